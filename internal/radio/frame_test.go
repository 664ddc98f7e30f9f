package radio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name    string
		payload []byte
	}{
		{"reading", []byte("533:80:21.5:")},
		{"empty", nil},
		{"max", bytes.Repeat([]byte{0xAB}, MaxFramePayload)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			frame, err := EncodeFrame(tc.payload)
			if err != nil {
				t.Fatalf("EncodeFrame: %v", err)
			}
			got, err := ReadFrame(bytes.NewReader(frame))
			if err != nil {
				t.Fatalf("ReadFrame: %v", err)
			}
			if !bytes.Equal(got, tc.payload) {
				t.Fatalf("ReadFrame = %q, want %q", got, tc.payload)
			}
		})
	}
}

func TestReadFrameBackToBack(t *testing.T) {
	var stream bytes.Buffer
	for _, p := range []string{"533:80:21.5:", "533:80:-5.6:"} {
		frame, err := EncodeFrame([]byte(p))
		if err != nil {
			t.Fatalf("EncodeFrame(%q): %v", p, err)
		}
		stream.Write(frame)
	}

	for _, want := range []string{"533:80:21.5:", "533:80:-5.6:"} {
		got, err := ReadFrame(&stream)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if string(got) != want {
			t.Fatalf("ReadFrame = %q, want %q", got, want)
		}
	}
}

func TestReadFrameRejectsCorruption(t *testing.T) {
	frame, err := EncodeFrame([]byte("533:80:21.5:"))
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	frame[3] ^= 0x01 // flip one payload bit

	_, err = ReadFrame(bytes.NewReader(frame))
	if !errors.Is(err, ErrFrameCorrupt) {
		t.Fatalf("ReadFrame = %v, want ErrFrameCorrupt", err)
	}
}

func TestReadFrameShortStream(t *testing.T) {
	frame, err := EncodeFrame([]byte("533:80:21.5:"))
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}

	_, err = ReadFrame(bytes.NewReader(frame[:len(frame)-2]))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadFrame(truncated) = %v, want ErrUnexpectedEOF", err)
	}
}

func TestEncodeFrameRejectsOversize(t *testing.T) {
	_, err := EncodeFrame(bytes.Repeat([]byte{'x'}, MaxFramePayload+1))
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("EncodeFrame = %v, want ErrFrameTooLarge", err)
	}
}
