package radio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// retryDelay paces reopen attempts after a serial fault.
const retryDelay = 5 * time.Second

// Modem is the transmit half of a serial-attached radio board. The board
// forwards every frame it receives on the UART straight onto the air at its
// fixed bit rate.
type Modem struct {
	port    io.ReadWriteCloser
	bitRate int

	lastFrame int
	indicator bool
}

// DialModem opens the serial device the radio board hangs off.
func DialModem(device string, baud, bitRate int) (*Modem, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	return &Modem{port: port, bitRate: bitRate}, nil
}

func (m *Modem) Transmit(data []byte) error {
	frame, err := EncodeFrame(data)
	if err != nil {
		return err
	}
	if _, err := m.port.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	m.lastFrame = len(frame)
	return nil
}

// Flush waits out the on-air time of the last frame. The board has no
// done signal, so the wait is computed from frame length and bit rate.
func (m *Modem) Flush() error {
	bits := m.lastFrame * 8
	time.Sleep(time.Duration(bits) * time.Second / time.Duration(m.bitRate))
	return nil
}

func (m *Modem) SetIndicator(on bool) { m.indicator = on }

// Indicator reports the current indicator state.
func (m *Modem) Indicator() bool { return m.indicator }

func (m *Modem) Close() error { return m.port.Close() }

// Listener is the receive half: it owns the gateway's serial device and
// yields one payload per valid frame. Corrupt frames are dropped and counted
// against nothing; the link is lossy by design. A failed device is reopened
// after retryDelay.
type Listener struct {
	device string
	baud   int
	log    *slog.Logger

	mu     sync.Mutex
	port   io.ReadWriteCloser
	closed bool
}

func NewListener(device string, baud int, log *slog.Logger) *Listener {
	return &Listener{device: device, baud: baud, log: log}
}

// Receive blocks until a valid frame arrives, the listener is closed, or ctx
// is done. Close unblocks a pending Receive.
func (l *Listener) Receive(ctx context.Context) ([]byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		port, err := l.ensurePort()
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return nil, err
			}
			l.log.Warn("serial open failed", "device", l.device, "err", err)
			if !sleepCtx(ctx, retryDelay) {
				return nil, ctx.Err()
			}
			continue
		}

		payload, err := ReadFrame(port)
		if err == nil {
			return payload, nil
		}
		if errors.Is(err, ErrFrameCorrupt) {
			l.log.Warn("dropping corrupt frame", "err", err)
			continue
		}
		if l.isClosed() {
			return nil, ErrClosed
		}
		l.log.Warn("serial read failed", "device", l.device, "err", err)
		l.dropPort(port)
		if !sleepCtx(ctx, retryDelay) {
			return nil, ctx.Err()
		}
	}
}

func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	return err
}

func (l *Listener) ensurePort() (io.ReadWriteCloser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, ErrClosed
	}
	if l.port != nil {
		return l.port, nil
	}
	port, err := serial.OpenPort(&serial.Config{Name: l.device, Baud: l.baud})
	if err != nil {
		return nil, err
	}
	l.log.Info("serial device open", "device", l.device, "baud", l.baud)
	l.port = port
	return port, nil
}

func (l *Listener) dropPort(port io.ReadWriteCloser) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.port == port {
		l.port = nil
	}
	port.Close()
}

func (l *Listener) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
