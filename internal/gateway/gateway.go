// Package gateway receives node payloads off the radio link, enriches them
// into full readings and fans them out to the configured sinks.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikaPetteriLundgren/templogger/internal/metrics"
	"github.com/MikaPetteriLundgren/templogger/internal/radio"
	"github.com/MikaPetteriLundgren/templogger/internal/sink"
	"github.com/MikaPetteriLundgren/templogger/internal/wire"
)

// recordTimeout bounds the whole fanout for one reading. A wedged sink must
// not dam up the receive loop.
const recordTimeout = 10 * time.Second

// Labeler resolves a sensor index to its human label.
type Labeler interface {
	Label(index int) string
}

// Service is the gateway's receive pipeline. Run is the only goroutine that
// touches the receiver; Status may be called from anywhere.
type Service struct {
	rx     radio.Receiver
	sinks  []sink.Sink
	labels Labeler
	log    *slog.Logger

	mu       sync.Mutex
	started  time.Time
	received uint64
	parsed   uint64
	dropped  uint64
	last     *sink.Reading
}

func New(rx radio.Receiver, sinks []sink.Sink, labels Labeler, log *slog.Logger) *Service {
	return &Service{
		rx:      rx,
		sinks:   sinks,
		labels:  labels,
		log:     log,
		started: time.Now().UTC(),
	}
}

// Run receives until ctx is done or the receiver is closed.
func (s *Service) Run(ctx context.Context) {
	s.log.Info("receive loop started", "sinks", s.sinkNames())
	for {
		payload, err := s.rx.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, radio.ErrClosed) {
				s.log.Info("receive loop stopped")
				return
			}
			s.log.Warn("receive failed", "err", err)
			continue
		}
		s.handle(ctx, payload)
	}
}

func (s *Service) handle(ctx context.Context, payload []byte) {
	metrics.FramesReceived.Inc()

	parsed, err := wire.Parse(payload)
	if err != nil {
		metrics.ParseErrors.Inc()
		s.mu.Lock()
		s.received++
		s.dropped++
		s.mu.Unlock()
		s.log.Warn("dropping unparseable payload", "payload", string(payload), "err", err)
		return
	}
	metrics.ReadingsParsed.Inc()

	rec := sink.Reading{
		ID:          uuid.NewString(),
		SensorIndex: parsed.SensorIndex,
		DeviceType:  parsed.DeviceType,
		Label:       s.labels.Label(parsed.SensorIndex),
		Celsius:     parsed.Celsius,
		ReceivedAt:  time.Now().UTC(),
	}
	metrics.LastReadingEpoch.Set(float64(rec.ReceivedAt.Unix()))

	s.mu.Lock()
	s.received++
	s.parsed++
	s.last = &rec
	s.mu.Unlock()

	s.log.Info("reading received",
		"sensor", rec.SensorIndex,
		"label", rec.Label,
		"celsius", rec.Celsius,
		"id", rec.ID)

	fanCtx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()
	for _, snk := range s.sinks {
		if err := snk.Record(fanCtx, rec); err != nil {
			metrics.SinkErrors.WithLabelValues(snk.Name()).Inc()
			s.log.Error("sink write failed", "sink", snk.Name(), "id", rec.ID, "err", err)
			continue
		}
		metrics.SinkWrites.WithLabelValues(snk.Name()).Inc()
	}
}

// Status is a point-in-time snapshot for the status endpoint.
type Status struct {
	Started     time.Time     `json:"started"`
	Received    uint64        `json:"received"`
	Parsed      uint64        `json:"parsed"`
	Dropped     uint64        `json:"dropped"`
	Sinks       []string      `json:"sinks"`
	LastReading *sink.Reading `json:"last_reading,omitempty"`
}

func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Started:  s.started,
		Received: s.received,
		Parsed:   s.parsed,
		Dropped:  s.dropped,
		Sinks:    s.sinkNames(),
	}
	if s.last != nil {
		last := *s.last
		st.LastReading = &last
	}
	return st
}

func (s *Service) sinkNames() []string {
	names := make([]string, 0, len(s.sinks))
	for _, snk := range s.sinks {
		names = append(names, snk.Name())
	}
	return names
}
