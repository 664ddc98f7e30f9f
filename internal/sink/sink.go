// Package sink fans gateway readings out to downstream consumers. Every sink
// gets every reading; one slow or broken consumer never blocks the others
// from seeing data.
package sink

import (
	"context"
	"time"
)

// Reading is a node measurement after gateway enrichment: receipt identity,
// arrival time and the human label for the sensor index.
type Reading struct {
	ID          string    `json:"id"`
	SensorIndex int       `json:"sensor"`
	DeviceType  int       `json:"device_type"`
	Label       string    `json:"label"`
	Celsius     float64   `json:"celsius"`
	ReceivedAt  time.Time `json:"received_at"`
}

// Sink is one downstream consumer of readings.
type Sink interface {
	Name() string
	Record(ctx context.Context, r Reading) error
	Close() error
}
