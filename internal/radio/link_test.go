package radio

import (
	"bytes"
	"errors"
	"testing"
)

type fakeDriver struct {
	transmitted [][]byte
	indicator   []bool
	flushes     int

	transmitErr error
	flushErr    error
}

func (d *fakeDriver) Transmit(data []byte) error {
	if d.transmitErr != nil {
		return d.transmitErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	d.transmitted = append(d.transmitted, cp)
	return nil
}

func (d *fakeDriver) Flush() error {
	if d.flushErr != nil {
		return d.flushErr
	}
	d.flushes++
	return nil
}

func (d *fakeDriver) SetIndicator(on bool) {
	d.indicator = append(d.indicator, on)
}

func TestSendWithinCapacity(t *testing.T) {
	drv := &fakeDriver{}
	link := NewLink(drv, 50)

	payload := bytes.Repeat([]byte{'x'}, 50)
	if err := link.Send(payload); err != nil {
		t.Fatalf("Send(50 bytes) = %v, want nil", err)
	}
	if len(drv.transmitted) != 1 || !bytes.Equal(drv.transmitted[0], payload) {
		t.Fatalf("driver got %v, want one copy of the payload", drv.transmitted)
	}
	if drv.flushes != 1 {
		t.Errorf("flushes = %d, want 1", drv.flushes)
	}
}

func TestSendRejectsOversize(t *testing.T) {
	drv := &fakeDriver{}
	link := NewLink(drv, 50)

	err := link.Send(bytes.Repeat([]byte{'x'}, 51))
	if !errors.Is(err, ErrPayloadTooLong) {
		t.Fatalf("Send(51 bytes) = %v, want ErrPayloadTooLong", err)
	}
	if len(drv.transmitted) != 0 {
		t.Errorf("driver saw %d payloads, want none", len(drv.transmitted))
	}
	if len(drv.indicator) != 0 {
		t.Errorf("indicator toggled %v, want untouched", drv.indicator)
	}
}

func TestSendBracketsTransmissionWithIndicator(t *testing.T) {
	drv := &fakeDriver{}
	link := NewLink(drv, 50)

	if err := link.Send([]byte("533:80:21.5:")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	want := []bool{true, false}
	if len(drv.indicator) != 2 || drv.indicator[0] != want[0] || drv.indicator[1] != want[1] {
		t.Fatalf("indicator transitions = %v, want %v", drv.indicator, want)
	}
}

func TestSendIndicatorClearedOnError(t *testing.T) {
	drv := &fakeDriver{transmitErr: errors.New("modem unplugged")}
	link := NewLink(drv, 50)

	if err := link.Send([]byte("533:80:21.5:")); err == nil {
		t.Fatal("Send = nil, want transmit error")
	}
	if len(drv.indicator) != 2 || drv.indicator[1] {
		t.Fatalf("indicator transitions = %v, want lit then cleared", drv.indicator)
	}
}

func TestSendPropagatesDriverErrors(t *testing.T) {
	boom := errors.New("boom")

	for _, tc := range []struct {
		name string
		drv  *fakeDriver
	}{
		{"transmit", &fakeDriver{transmitErr: boom}},
		{"flush", &fakeDriver{flushErr: boom}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			link := NewLink(tc.drv, 50)
			if err := link.Send([]byte("x")); !errors.Is(err, boom) {
				t.Fatalf("Send = %v, want wrapped %v", err, boom)
			}
		})
	}
}
