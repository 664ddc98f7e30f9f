// Package clock abstracts the node's real-time clock. The node timestamps
// readings against epoch seconds, not wall-clock ticks.
package clock

import "time"

// Source is the node's notion of absolute time.
type Source interface {
	// Now returns the current time as epoch seconds.
	Now() int64
	// Running reports whether the clock holds a valid time. A clock that
	// lost power reports false until seeded.
	Running() bool
	// Seed sets the clock. Used at boot only, when Running is false.
	Seed(epoch int64)
}

// System reads the host clock, which is always running.
type System struct{}

func NewSystem() *System { return &System{} }

func (*System) Now() int64    { return time.Now().Unix() }
func (*System) Running() bool { return true }

// Seed is a no-op: the host clock is authoritative and not writable from
// here.
func (*System) Seed(int64) {}

// Manual is a settable clock for simulation and tests. It starts stopped,
// which exercises the boot seeding path. It is owned by the single control
// goroutine, so no locking.
type Manual struct {
	epoch   int64
	running bool
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) Now() int64    { return m.epoch }
func (m *Manual) Running() bool { return m.running }

func (m *Manual) Seed(epoch int64) {
	m.epoch = epoch
	m.running = true
}

// Advance moves the clock forward. Sub-second remainders are dropped; the
// node only resolves whole seconds.
func (m *Manual) Advance(d time.Duration) {
	m.epoch += int64(d / time.Second)
}
