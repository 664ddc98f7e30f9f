// Package metrics holds the gateway's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesReceived counts every payload that made it off the air,
	// parseable or not.
	FramesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tempgw_frames_received_total",
		Help: "Payloads received over the radio link.",
	})

	ReadingsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tempgw_readings_parsed_total",
		Help: "Payloads that parsed into valid readings.",
	})

	ParseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tempgw_parse_errors_total",
		Help: "Payloads dropped as malformed.",
	})

	SinkWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tempgw_sink_writes_total",
		Help: "Readings delivered, per sink.",
	}, []string{"sink"})

	SinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tempgw_sink_errors_total",
		Help: "Delivery failures, per sink.",
	}, []string{"sink"})

	// LastReadingEpoch makes silent nodes visible: alert when it stops
	// moving.
	LastReadingEpoch = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tempgw_last_reading_epoch_seconds",
		Help: "Arrival time of the most recent valid reading.",
	})
)
