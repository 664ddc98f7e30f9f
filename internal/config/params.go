// Package config carries the node's build-time parameters and the gateway's
// runtime configuration. Node parameters are compile-time constants: the
// node has no CLI and no config file, matching the fixed wiring of the
// original battery unit.
package config

import (
	"os"
	"strconv"
	"time"
)

// Fixed node identity and timing. SensorIndex and DeviceType identify this
// unit to the downstream gateway and are part of the wire contract.
const (
	SensorIndex = 533
	DeviceType  = 80

	// MeasureIntervalSec is the gap between readings, in epoch seconds.
	MeasureIntervalSec int64 = 300

	// SleepQuantum is the low-power nap between wake-ups. The controller
	// sleeps this long on every iteration whether or not it measured.
	SleepQuantum = 5000 * time.Millisecond

	// RadioBitRate is the on-air rate of the attached transmitter in bits
	// per second. Flush waits are derived from it.
	RadioBitRate = 2000

	// PayloadCapacity is the radio transmit buffer size in bytes. Payloads
	// longer than this are dropped, never truncated.
	PayloadCapacity = 50
)

// Default hardware attachment points. The Go analogue of pin assignments:
// overridable through env for bench setups, fixed defaults otherwise.
const (
	DefaultNodeModem    = "/dev/ttyAMA0"
	DefaultGatewayModem = "/dev/ttyUSB0"
	DefaultModemBaud    = 9600
	DefaultW1Dir        = "/sys/bus/w1/devices"
)

// buildEpoch is stamped at build time:
//
//	go build -ldflags "-X github.com/MikaPetteriLundgren/templogger/internal/config.buildEpoch=$(date +%s)"
//
// It seeds a stopped clock at boot, the same recovery the original unit did
// with its firmware build timestamp.
var buildEpoch string

// fallbackBuildEpoch is used when the binary was built without the stamp.
const fallbackBuildEpoch int64 = 1735689600 // 2025-01-01T00:00:00Z

// BuildEpoch returns the build timestamp as epoch seconds.
func BuildEpoch() int64 {
	if buildEpoch == "" {
		return fallbackBuildEpoch
	}
	v, err := strconv.ParseInt(buildEpoch, 10, 64)
	if err != nil || v <= 0 {
		return fallbackBuildEpoch
	}
	return v
}

// NodeModemPath returns the serial device of the node's radio modem.
func NodeModemPath() string {
	return getEnv("TEMPLOGGER_RADIO_PORT", DefaultNodeModem)
}

// W1Dir returns the 1-wire sysfs directory holding the sensor bus.
func W1Dir() string {
	return getEnv("TEMPLOGGER_W1_DIR", DefaultW1Dir)
}

// SimMode reports whether the node should run against simulated drivers.
func SimMode() bool {
	return os.Getenv("TEMPLOGGER_MODE") == "sim"
}
