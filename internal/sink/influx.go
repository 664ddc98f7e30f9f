package sink

import (
	"context"
	"fmt"
	"strconv"

	influx "github.com/influxdata/influxdb/client/v2"
)

// Influx archives readings as points in the temperature measurement, tagged
// by sensor index and label for per-room queries.
type Influx struct {
	client influx.Client
	db     string
}

func NewInflux(url, db, username, password string) (*Influx, error) {
	client, err := influx.NewHTTPClient(influx.HTTPConfig{
		Addr:     url,
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("influx client: %w", err)
	}
	return &Influx{client: client, db: db}, nil
}

func (s *Influx) Name() string { return "influx" }

func (s *Influx) Record(ctx context.Context, r Reading) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bp, err := influx.NewBatchPoints(influx.BatchPointsConfig{
		Database:  s.db,
		Precision: "s",
	})
	if err != nil {
		return fmt.Errorf("batch points: %w", err)
	}

	tags := map[string]string{
		"sensor":      strconv.Itoa(r.SensorIndex),
		"label":       r.Label,
		"device_type": strconv.Itoa(r.DeviceType),
	}
	fields := map[string]interface{}{
		"celsius": r.Celsius,
	}
	pt, err := influx.NewPoint("temperature", tags, fields, r.ReceivedAt)
	if err != nil {
		return fmt.Errorf("point: %w", err)
	}
	bp.AddPoint(pt)

	if err := s.client.Write(bp); err != nil {
		return fmt.Errorf("write %s: %w", s.db, err)
	}
	return nil
}

func (s *Influx) Close() error { return s.client.Close() }
