package radio

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// Modem hop framing. Each payload crosses the serial line as
//
//	| length (1) | payload (length) | crc32 (4, little endian) |
//
// The checksum covers the payload only. MaxFramePayload is what fits the
// single length byte; the transmit buffer limit enforced by Link is far
// below it.
const MaxFramePayload = 255

const frameOverhead = 1 + 4

// EncodeFrame wraps a payload for the modem hop.
func EncodeFrame(payload []byte) ([]byte, error) {
	if len(payload) > MaxFramePayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	frame := make([]byte, 0, len(payload)+frameOverhead)
	frame = append(frame, byte(len(payload)))
	frame = append(frame, payload...)
	frame = binary.LittleEndian.AppendUint32(frame, crc32.ChecksumIEEE(payload))
	return frame, nil
}

// ReadFrame reads one frame off the stream and returns its payload. A
// checksum mismatch returns ErrFrameCorrupt; the caller drops the frame and
// keeps reading. Stream errors pass through unchanged.
func ReadFrame(r io.Reader) ([]byte, error) {
	var head [1]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, err
	}
	n := int(head[0])

	body := make([]byte, n+4)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	payload := body[:n]
	want := binary.LittleEndian.Uint32(body[n:])
	if got := crc32.ChecksumIEEE(payload); got != want {
		return nil, fmt.Errorf("%w: got %08x want %08x", ErrFrameCorrupt, got, want)
	}
	return payload, nil
}
