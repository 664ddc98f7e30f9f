// Package wire implements the radio payload format shared by the node and
// the gateway:
//
//	<sensorIndex>:<deviceType>:<temperature>:
//
// e.g. "533:80:21.5:". Four colon-separated fields, the last one empty. The
// temperature carries exactly one decimal digit. Field order and separator
// are the contract with the deployed gateway parser and must not change.
package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPayload reports a payload that does not match the wire format.
var ErrMalformedPayload = errors.New("malformed payload")

// Identity names a node to the downstream gateway.
type Identity struct {
	SensorIndex int
	DeviceType  int
}

// Reading is a decoded payload.
type Reading struct {
	SensorIndex int
	DeviceType  int
	Celsius     float64
}

// Encode builds the payload for one reading. Pure: identical inputs yield
// byte-identical payloads.
func Encode(id Identity, celsius float64) []byte {
	var b strings.Builder
	b.WriteString(strconv.Itoa(id.SensorIndex))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(id.DeviceType))
	b.WriteByte(':')
	b.WriteString(formatCelsius(celsius))
	b.WriteByte(':')
	return []byte(b.String())
}

// formatCelsius renders the temperature with one decimal digit by formatting
// to two decimals and dropping the final character. The deployed gateway was
// built against this exact truncation, not one-decimal rounding: 21.96
// encodes as "21.9", where rounding would have produced "22.0".
func formatCelsius(c float64) string {
	s := strconv.FormatFloat(c, 'f', 2, 64)
	return s[:len(s)-1]
}

// Parse decodes a payload back into a Reading. The trailing empty field is
// required.
func Parse(payload []byte) (Reading, error) {
	parts := strings.Split(string(payload), ":")
	if len(parts) != 4 || parts[3] != "" {
		return Reading{}, fmt.Errorf("%w: want 4 colon-separated fields with trailing separator, got %q", ErrMalformedPayload, payload)
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return Reading{}, fmt.Errorf("%w: sensor index %q", ErrMalformedPayload, parts[0])
	}
	typ, err := strconv.Atoi(parts[1])
	if err != nil {
		return Reading{}, fmt.Errorf("%w: device type %q", ErrMalformedPayload, parts[1])
	}
	c, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Reading{}, fmt.Errorf("%w: temperature %q", ErrMalformedPayload, parts[2])
	}
	return Reading{SensorIndex: idx, DeviceType: typ, Celsius: c}, nil
}
