// Package sensor abstracts the node's thermal probe. Read failures never
// surface as errors on the data path: a missing or unreadable device yields
// the DS18x20 disconnected sentinel, which is transmitted as-is so the
// gateway sees that the node is alive but blind.
package sensor

// DisconnectedC is reported when the probe cannot produce a reading. The
// value is the DS18x20 driver convention for a device that fell off the bus.
const DisconnectedC = -127.0

// Probe is a temperature sensor bus with indexed devices.
type Probe interface {
	// Convert prepares the next reading (bus rescan / conversion trigger).
	// A failure is diagnostic only; reads after a failed Convert return
	// DisconnectedC.
	Convert() error
	// ReadCelsius returns the temperature of the device at index, or
	// DisconnectedC when it cannot be read. There is no error return by
	// design: the node transmits whatever the bus gave it.
	ReadCelsius(index int) float64
	// Devices returns the number of devices found on the bus.
	Devices() int
}
