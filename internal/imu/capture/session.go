// Package capture orchestrates one acquisition pass: acquire a raw byte
// buffer from a transport, split it into candidate frames, and decode
// each candidate into a structured record.
package capture

import (
	"fmt"

	"github.com/banshee-data/iceberg.twist/internal/imu/frame"
	"github.com/banshee-data/iceberg.twist/internal/monitoring"
)

// AcquireFunc produces one raw capture buffer. Any waiting for the sensor
// to fill the OS buffer happens inside the function; the session calls it
// exactly once per Run and applies no retry.
type AcquireFunc func() ([]byte, error)

// Failure records a candidate frame that could not be decoded. Failures
// are data-quality signals: one malformed candidate never aborts the rest
// of the capture.
type Failure struct {
	// Index is the candidate's position in the split sequence.
	Index int

	// Length is the candidate's length in bytes.
	Length int

	// Err is the decode error, wrapping frame.ErrTooShort.
	Err error
}

func (f Failure) String() string {
	return fmt.Sprintf("candidate %d (%d bytes): %v", f.Index, f.Length, f.Err)
}

// Result holds the outcome of one capture run: successfully decoded
// frames in stream order, and a side channel of per-candidate failures.
type Result struct {
	Frames   []frame.Frame
	Failures []Failure
}

// Session runs the acquire → split → decode pipeline. The zero value
// uses native byte order and naive delimiter framing. Sessions hold no
// state across runs and are safe for concurrent use.
type Session struct {
	// Decoder extracts timestamp and samples from each candidate.
	Decoder frame.Decoder

	// Framing splits the raw capture into candidates. Nil means
	// frame.NaiveFraming.
	Framing frame.FramingStrategy
}

// Run calls acquire exactly once and decodes every candidate frame in the
// returned buffer. Acquisition errors are returned unchanged; decode
// failures are collected per candidate without stopping the pass. An
// empty capture yields an empty result.
func (s *Session) Run(acquire AcquireFunc) (*Result, error) {
	raw, err := acquire()
	if err != nil {
		return nil, err
	}

	framing := s.Framing
	if framing == nil {
		framing = frame.NaiveFraming{}
	}

	res := &Result{}
	for i, candidate := range framing.Frames(raw) {
		f, err := s.Decoder.Decode(candidate)
		if err != nil {
			monitoring.Debugf("skipping candidate %d (%d bytes): %v", i, len(candidate), err)
			res.Failures = append(res.Failures, Failure{Index: i, Length: len(candidate), Err: err})
			continue
		}
		res.Frames = append(res.Frames, f)
	}
	return res, nil
}
