package serialport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"

	"github.com/banshee-data/iceberg.twist/internal/monitoring"
)

// Porter is the minimal surface of an open serial port that the
// transport needs. go.bug.st/serial.Port satisfies it; tests inject a
// scripted implementation.
type Porter interface {
	io.ReadCloser
	SetReadTimeout(timeout time.Duration) error
}

// Opener opens a serial port at the given path. Injectable so the
// transport can be exercised without hardware.
type Opener func(path string, mode *serial.Mode) (Porter, error)

func openReal(path string, mode *serial.Mode) (Porter, error) {
	return serial.Open(path, mode)
}

// Transport acquires raw capture buffers from a serial device. Each
// Acquire call is self-contained: open, wait, drain, close. No port
// handle outlives the call, so a failed capture never leaks the device.
type Transport struct {
	opts Options
	open Opener
}

// New builds a Transport backed by a real serial port.
func New(opts Options) *Transport {
	return &Transport{opts: opts, open: openReal}
}

// NewWithOpener builds a Transport with an injected port opener.
func NewWithOpener(opts Options, open Opener) *Transport {
	return &Transport{opts: opts, open: open}
}

// Acquire opens the device, waits for the sensor to fill the OS receive
// buffer, reads everything currently available, and closes the port. The
// port is released on every exit path, including errors and context
// cancellation. The wait itself is the transport's concern; callers that
// need repeated polling call Acquire repeatedly.
func (t *Transport) Acquire(ctx context.Context, wait time.Duration) ([]byte, error) {
	opts, err := t.opts.Normalize()
	if err != nil {
		return nil, err
	}
	mode, err := opts.Mode()
	if err != nil {
		return nil, err
	}

	port, err := t.open(opts.Path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Path, err)
	}
	defer port.Close()

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
		return nil, fmt.Errorf("set read timeout on %s: %w", opts.Path, err)
	}

	buf, err := drain(ctx, port)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Path, err)
	}
	monitoring.Debugf("acquired %d bytes from %s", len(buf), opts.Path)
	return buf, nil
}

// drain reads everything buffered on the port right now. Full chunks mean
// the OS buffer still has data; the first partial or empty read marks the
// end of what was buffered at acquisition time, which keeps a
// continuously streaming sensor from pinning the loop forever.
func drain(ctx context.Context, port Porter) ([]byte, error) {
	var out []byte
	chunk := make([]byte, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := port.Read(chunk)
		if n > 0 {
			out = append(out, chunk[:n]...)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if n < len(chunk) {
			return out, nil
		}
	}
}
