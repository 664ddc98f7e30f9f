// Package cycle runs the node's measurement loop: wake, check the schedule,
// read the sensor, transmit, sleep. Everything happens on one goroutine; the
// node has no other work to interleave.
package cycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/MikaPetteriLundgren/templogger/internal/clock"
	"github.com/MikaPetteriLundgren/templogger/internal/duty"
	"github.com/MikaPetteriLundgren/templogger/internal/radio"
	"github.com/MikaPetteriLundgren/templogger/internal/sensor"
	"github.com/MikaPetteriLundgren/templogger/internal/wire"
)

// Config wires a Controller. All fields are required.
type Config struct {
	Clock    clock.Source
	Probe    sensor.Probe
	Link     *radio.Link
	Sleeper  duty.Sleeper
	Log      *slog.Logger
	Identity wire.Identity

	// IntervalSec is the spacing between measurements in seconds.
	IntervalSec int64
	// Quantum is how long the node stands by between wakeups.
	Quantum time.Duration
	// SeedEpoch initializes a clock that lost its time, typically the
	// binary's build time. Approximate by intent: a monotonic wrong clock
	// beats a stopped one.
	SeedEpoch int64
}

// Controller owns the loop. A Controller is not safe for concurrent use and
// never needs to be: Run is the only entry point and it never returns until
// ctx is done.
type Controller struct {
	cfg   Config
	sched *duty.Scheduler
}

func New(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// Run performs the boot checks and then loops until ctx is done. Sensor and
// radio failures are logged and absorbed; a battery node has nobody to
// crash for.
func (c *Controller) Run(ctx context.Context) {
	log := c.cfg.Log

	if !c.cfg.Clock.Running() {
		c.cfg.Clock.Seed(c.cfg.SeedEpoch)
		log.Warn("clock was not running, seeded from build time", "epoch", c.cfg.SeedEpoch)
	}
	log.Info("sensors found on the bus", "devices", c.cfg.Probe.Devices())

	boot := c.cfg.Clock.Now()
	c.sched = duty.NewScheduler(c.cfg.IntervalSec, boot)
	log.Info("measurement loop started",
		"interval_s", c.cfg.IntervalSec,
		"quantum", c.cfg.Quantum,
		"boot_epoch", boot)

	for {
		select {
		case <-ctx.Done():
			log.Info("measurement loop stopped")
			return
		default:
		}

		c.step()
		c.cfg.Sleeper.Sleep(c.cfg.Quantum)
	}
}

// step runs one wakeup: measure and transmit if due, otherwise nothing.
func (c *Controller) step() {
	now := c.cfg.Clock.Now()
	if !c.sched.Due(now) {
		return
	}

	log := c.cfg.Log
	if err := c.cfg.Probe.Convert(); err != nil {
		log.Warn("temperature conversion failed", "err", err)
	}
	celsius := c.cfg.Probe.ReadCelsius(0)

	payload := wire.Encode(c.cfg.Identity, celsius)
	if err := c.cfg.Link.Send(payload); err != nil {
		log.Warn("transmission failed", "err", err, "payload", string(payload))
	} else {
		log.Info("reading transmitted", "celsius", celsius, "payload", string(payload))
	}

	// The attempt counts either way. The link is one-way: there is no ack
	// to wait for, and a failed send waits out a full interval like any
	// other.
	c.sched.Record(now)
}
