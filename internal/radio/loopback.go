package radio

import (
	"context"
	"sync"
)

// Loopback is an in-process radio pair: payloads handed to the Driver side
// come back out the Receiver side. It stands in for real hardware in
// simulation mode and in tests. Like the air, it drops on congestion rather
// than block the sender.
type Loopback struct {
	mu        sync.Mutex
	sent      [][]byte
	indicator bool
	closed    bool

	ch   chan []byte
	done chan struct{}
}

func NewLoopback() *Loopback {
	return &Loopback{
		ch:   make(chan []byte, 16),
		done: make(chan struct{}),
	}
}

func (l *Loopback) Transmit(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.sent = append(l.sent, cp)
	l.mu.Unlock()

	select {
	case l.ch <- cp:
	default: // receiver not keeping up, payload lost in the air
	}
	return nil
}

func (l *Loopback) Flush() error { return nil }

func (l *Loopback) SetIndicator(on bool) {
	l.mu.Lock()
	l.indicator = on
	l.mu.Unlock()
}

// Indicator reports the current indicator state.
func (l *Loopback) Indicator() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indicator
}

// Sent returns a snapshot of every payload transmitted so far.
func (l *Loopback) Sent() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]byte, len(l.sent))
	copy(out, l.sent)
	return out
}

func (l *Loopback) Receive(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
		return nil, ErrClosed
	case payload := <-l.ch:
		return payload, nil
	}
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.done)
	}
	return nil
}
