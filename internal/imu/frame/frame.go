// Package frame locates and decodes IMU sensor frames within a raw
// capture buffer.
//
// The transmitter emits fixed-layout binary frames separated by a single
// delimiter byte. Within one frame the timestamp is a signed 32-bit value
// at byte offset 6 and the sample payload runs from byte offset 10 to the
// end of the frame, packed as consecutive signed 16-bit channel samples.
// The sensor protocol does not declare a byte order for multi-byte
// fields; the decoder defaults to the platform's native order, so replay
// of a capture recorded on a different platform may need an explicit
// order.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Frame layout constants. Offsets are within one candidate frame,
// 0-indexed, matching the sensor's wire format.
const (
	// Delimiter separates frames in the raw byte stream. The same value
	// also occurs inside sample payloads, so naive splitting can cut a
	// frame short; see Split.
	Delimiter byte = 0x3A

	// TimestampOffset is the byte offset of the int32 timestamp field.
	TimestampOffset = 6

	// TimestampSize is the width of the timestamp field in bytes.
	TimestampSize = 4

	// PayloadOffset is the byte offset of the first sample byte.
	PayloadOffset = TimestampOffset + TimestampSize

	// MinFrameLen is the smallest candidate that carries a complete
	// timestamp field. Shorter candidates decode to ErrTooShort.
	MinFrameLen = TimestampOffset + TimestampSize

	// SampleSize is the width of one channel sample in bytes.
	SampleSize = 2
)

// ErrTooShort reports a candidate frame with fewer bytes than the
// requested field needs. It is the only structured decode error: every
// bit pattern of the right width is a valid value, so insufficient bytes
// is the only way a decode can fail.
var ErrTooShort = errors.New("frame too short")

func tooShort(have, need int) error {
	return fmt.Errorf("%w: have %d bytes, need %d", ErrTooShort, have, need)
}

// Frame is one decoded sensor record.
type Frame struct {
	// Timestamp is the sensor's frame timestamp, as transmitted.
	Timestamp int32

	// Samples holds the channel samples in stream order. Its length is
	// determined solely by the payload length (two bytes per sample, a
	// trailing odd byte is dropped).
	Samples []int16
}

// Decoder extracts typed fields from candidate frames. The zero value
// decodes with the platform's native byte order. Decoders are stateless
// and safe for concurrent use.
type Decoder struct {
	// Order is the byte order used for the timestamp and sample fields.
	// Nil means binary.NativeEndian.
	Order binary.ByteOrder
}

func (d Decoder) order() binary.ByteOrder {
	if d.Order == nil {
		return binary.NativeEndian
	}
	return d.Order
}

// Timestamp extracts the int32 timestamp field from a candidate frame.
// The candidate must be at least MinFrameLen bytes long.
func (d Decoder) Timestamp(candidate []byte) (int32, error) {
	if len(candidate) < MinFrameLen {
		return 0, tooShort(len(candidate), MinFrameLen)
	}
	raw := d.order().Uint32(candidate[TimestampOffset : TimestampOffset+TimestampSize])
	return int32(raw), nil
}

// Samples decodes the sample payload of a candidate frame: every
// consecutive two-byte group from PayloadOffset onward, in stream order.
// A trailing odd byte is discarded without error. A candidate whose
// length is exactly PayloadOffset yields an empty sample slice.
func (d Decoder) Samples(candidate []byte) ([]int16, error) {
	if len(candidate) < PayloadOffset {
		return nil, tooShort(len(candidate), PayloadOffset)
	}
	payload := candidate[PayloadOffset:]
	order := d.order()
	samples := make([]int16, 0, len(payload)/SampleSize)
	for i := 0; i+SampleSize <= len(payload); i += SampleSize {
		samples = append(samples, int16(order.Uint16(payload[i:i+SampleSize])))
	}
	return samples, nil
}

// Decode extracts the timestamp and all samples from a candidate frame.
func (d Decoder) Decode(candidate []byte) (Frame, error) {
	ts, err := d.Timestamp(candidate)
	if err != nil {
		return Frame{}, err
	}
	samples, err := d.Samples(candidate)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Timestamp: ts, Samples: samples}, nil
}
