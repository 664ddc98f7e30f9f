// Package radio carries payloads over the node's unidirectional low-bandwidth
// link. The node side owns a transmit-only Link; the gateway side owns a
// receive-only Listener. There is no acknowledgement path in either
// direction.
package radio

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrPayloadTooLong reports a payload larger than the transmit buffer.
	// Nothing is transmitted in that case.
	ErrPayloadTooLong = errors.New("payload exceeds radio buffer")
	// ErrFrameTooLarge reports a payload that cannot fit a single frame on
	// the modem hop.
	ErrFrameTooLarge = errors.New("frame payload too large")
	// ErrFrameCorrupt reports a frame whose checksum did not verify.
	ErrFrameCorrupt = errors.New("frame checksum mismatch")
	// ErrClosed reports use of a closed attachment.
	ErrClosed = errors.New("radio attachment closed")
)

// Driver is the transmit half of a radio attachment.
type Driver interface {
	// Transmit hands one payload to the radio.
	Transmit(data []byte) error
	// Flush blocks until the payload is physically on the air. The wait is
	// bounded by payload length and the fixed bit rate.
	Flush() error
	// SetIndicator drives the transmit indicator.
	SetIndicator(on bool)
}

// Receiver is the receive half of a radio attachment.
type Receiver interface {
	// Receive blocks until the next payload arrives or ctx is done.
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}

// Link wraps a Driver with the capacity check and the indicator side effect.
// Payloads longer than the capacity are rejected whole; the link never
// truncates.
type Link struct {
	drv      Driver
	capacity int
}

func NewLink(drv Driver, capacity int) *Link {
	return &Link{drv: drv, capacity: capacity}
}

// Capacity returns the transmit buffer size in bytes.
func (l *Link) Capacity() int { return l.capacity }

// Send transmits one payload and blocks until it is on the air. The
// indicator is lit for the duration of the transmission.
func (l *Link) Send(payload []byte) error {
	if len(payload) > l.capacity {
		return fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLong, len(payload), l.capacity)
	}
	l.drv.SetIndicator(true)
	defer l.drv.SetIndicator(false)

	if err := l.drv.Transmit(payload); err != nil {
		return fmt.Errorf("transmit: %w", err)
	}
	if err := l.drv.Flush(); err != nil {
		return fmt.Errorf("wait for transmission: %w", err)
	}
	return nil
}
