// templogger is the battery node binary: one sensor, one radio, one loop.
// It takes no flags; node parameters are fixed at build time.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikaPetteriLundgren/templogger/internal/clock"
	"github.com/MikaPetteriLundgren/templogger/internal/config"
	"github.com/MikaPetteriLundgren/templogger/internal/cycle"
	"github.com/MikaPetteriLundgren/templogger/internal/duty"
	"github.com/MikaPetteriLundgren/templogger/internal/logging"
	"github.com/MikaPetteriLundgren/templogger/internal/radio"
	"github.com/MikaPetteriLundgren/templogger/internal/sensor"
	"github.com/MikaPetteriLundgren/templogger/internal/wire"
)

// simSleeper compresses time in sim mode: each sleep advances the simulated
// clock by the full quantum while napping only briefly in wall time.
type simSleeper struct {
	clk *clock.Manual
}

func (s simSleeper) Sleep(d time.Duration) {
	s.clk.Advance(d)
	time.Sleep(100 * time.Millisecond)
}

func main() {
	log, logFile := logging.Init()
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		drv     radio.Driver
		probe   sensor.Probe
		src     clock.Source
		sleeper duty.Sleeper
	)
	if config.SimMode() {
		log.Info("simulated attachments enabled")
		lb := radio.NewLoopback()
		defer lb.Close()
		manual := clock.NewManual() // stopped until boot seeds it
		drv = lb
		probe = sensor.NewSim()
		src = manual
		sleeper = simSleeper{clk: manual}
	} else {
		modem, err := radio.DialModem(config.NodeModemPath(), config.DefaultModemBaud, config.RadioBitRate)
		if err != nil {
			log.Error("cannot open radio modem", "err", err)
			os.Exit(1)
		}
		defer modem.Close()
		drv = modem
		probe = sensor.NewW1Bus(config.W1Dir())
		src = clock.NewSystem()
		sleeper = duty.Standby{}
	}

	log.Info("templogger starting",
		"sensor_index", config.SensorIndex,
		"device_type", config.DeviceType,
		"interval_s", config.MeasureIntervalSec)

	cycle.New(cycle.Config{
		Clock:       src,
		Probe:       probe,
		Link:        radio.NewLink(drv, config.PayloadCapacity),
		Sleeper:     sleeper,
		Log:         log.With("component", "cycle"),
		Identity:    wire.Identity{SensorIndex: config.SensorIndex, DeviceType: config.DeviceType},
		IntervalSec: config.MeasureIntervalSec,
		Quantum:     config.SleepQuantum,
		SeedEpoch:   config.BuildEpoch(),
	}).Run(ctx)

	log.Info("templogger stopped")
}
