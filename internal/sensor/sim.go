package sensor

import "math/rand"

// Sim is a synthetic probe for sim mode: one device, room temperatures
// between 18 and 28 degrees.
type Sim struct{}

func NewSim() *Sim { return &Sim{} }

func (*Sim) Convert() error { return nil }

func (*Sim) ReadCelsius(index int) float64 {
	if index != 0 {
		return DisconnectedC
	}
	return 18 + rand.Float64()*10
}

func (*Sim) Devices() int { return 1 }
