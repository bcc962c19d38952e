package serialport

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// ScriptedPort implements Porter with configurable behaviour for testing:
// canned read data, injected errors, and call accounting.
type ScriptedPort struct {
	mu sync.Mutex

	// ReadBuffer holds the bytes returned by Read calls.
	ReadBuffer *bytes.Buffer

	// ReadError is returned by every Read call when set.
	ReadError error

	// TimeoutError is returned by SetReadTimeout when set.
	TimeoutError error

	// CloseError is returned by Close when set.
	CloseError error

	// MaxChunk caps the bytes returned per Read when positive,
	// simulating a port that returns partial reads.
	MaxChunk int

	readTimeout time.Duration
	closed      bool
	readCalls   int
}

// NewScriptedPort returns a port that serves the given bytes.
func NewScriptedPort(data []byte) *ScriptedPort {
	return &ScriptedPort{ReadBuffer: bytes.NewBuffer(data)}
}

// Read serves from ReadBuffer. Once the buffer is empty it behaves like a
// timed-out serial read: zero bytes, nil error.
func (p *ScriptedPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.readCalls++
	if p.ReadError != nil {
		return 0, p.ReadError
	}
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	if p.ReadBuffer == nil || p.ReadBuffer.Len() == 0 {
		return 0, nil
	}
	if p.MaxChunk > 0 && len(b) > p.MaxChunk {
		b = b[:p.MaxChunk]
	}
	return p.ReadBuffer.Read(b)
}

// SetReadTimeout records the requested timeout.
func (p *ScriptedPort) SetReadTimeout(timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.TimeoutError != nil {
		return p.TimeoutError
	}
	p.readTimeout = timeout
	return nil
}

// Close marks the port closed.
func (p *ScriptedPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return p.CloseError
}

// Closed reports whether Close has been called.
func (p *ScriptedPort) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// ReadTimeout returns the last timeout passed to SetReadTimeout.
func (p *ScriptedPort) ReadTimeout() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readTimeout
}

// ReadCalls returns how many times Read was invoked.
func (p *ScriptedPort) ReadCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readCalls
}
