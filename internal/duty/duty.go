// Package duty decides when the next measurement is owed and owns the node's
// low-power standby between cycles.
package duty

import "time"

// Scheduler tracks the last measurement attempt in epoch seconds and reports
// when the next one is due. An attempt counts whether or not the transmission
// succeeded; on a one-way link there is no retry credit to hand out.
type Scheduler struct {
	interval     int64
	lastMeasured int64
}

// NewScheduler starts the schedule at now, so the first measurement falls one
// full interval after boot.
func NewScheduler(intervalSec, now int64) *Scheduler {
	return &Scheduler{interval: intervalSec, lastMeasured: now}
}

// Due reports whether a measurement is owed at now. A clock that jumped
// backwards simply pushes the next measurement out; it never goes negative.
func (s *Scheduler) Due(now int64) bool {
	return now >= s.lastMeasured+s.interval
}

// Record marks a measurement attempt at now.
func (s *Scheduler) Record(now int64) {
	s.lastMeasured = now
}

// LastMeasured returns the epoch second of the most recent attempt.
func (s *Scheduler) LastMeasured() int64 { return s.lastMeasured }

// Interval returns the configured measurement spacing in seconds.
func (s *Scheduler) Interval() int64 { return s.interval }

// Sleeper puts the node into standby for a fixed quantum. The real
// implementation blocks the whole process; simulations substitute their own
// notion of passing time.
type Sleeper interface {
	Sleep(d time.Duration)
}

// Standby is the hardware sleep: nothing runs until the quantum elapses.
type Standby struct{}

func (Standby) Sleep(d time.Duration) { time.Sleep(d) }
