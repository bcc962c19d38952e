// Package serialport implements the capture transport: a scoped serial
// acquisition that opens the device, lets the sensor fill the OS buffer,
// drains every byte currently available, and releases the port.
package serialport

import (
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Options describes the serial connection parameters used when opening
// the sensor device. Options values are immutable once built; callers
// pass them in at acquisition time rather than mutating shared defaults.
type Options struct {
	Path        string        `json:"path"`
	BaudRate    int           `json:"baud_rate"`
	DataBits    int           `json:"data_bits"`
	StopBits    int           `json:"stop_bits"`
	Parity      string        `json:"parity"`
	ReadTimeout time.Duration `json:"read_timeout"`
}

// Normalize validates the options and applies defaults for any unset
// values: 115200 baud, 8 data bits, 1 stop bit, no parity, 1s read
// timeout.
func (o Options) Normalize() (Options, error) {
	opts := o

	if opts.Path == "" {
		return opts, fmt.Errorf("serial device path is required")
	}

	if opts.BaudRate == 0 {
		opts.BaudRate = 115200
	}
	if opts.BaudRate < 0 {
		return opts, fmt.Errorf("invalid baud rate %d", opts.BaudRate)
	}

	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, fmt.Errorf("invalid data bits %d: must be between 5 and 8", opts.DataBits)
	}

	if opts.StopBits == 0 {
		opts.StopBits = 1
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", opts.StopBits)
	}

	parity := strings.TrimSpace(strings.ToUpper(opts.Parity))
	if parity == "" {
		parity = "N"
	}
	switch parity {
	case "N", "NONE":
		parity = "N"
	case "E", "EVEN":
		parity = "E"
	case "O", "ODD":
		parity = "O"
	default:
		return opts, fmt.Errorf("unsupported parity %q: expected N, E, or O", opts.Parity)
	}
	opts.Parity = parity

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = time.Second
	}
	if opts.ReadTimeout < 0 {
		return opts, fmt.Errorf("invalid read timeout %v", opts.ReadTimeout)
	}

	return opts, nil
}

// Mode converts the options into the serial.Mode structure required by
// go.bug.st/serial when opening a port.
func (o Options) Mode() (*serial.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
	}

	switch opts.StopBits {
	case 1:
		mode.StopBits = serial.OneStopBit
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("unsupported stop bits %d", opts.StopBits)
	}

	switch opts.Parity {
	case "N":
		mode.Parity = serial.NoParity
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	default:
		return nil, fmt.Errorf("unsupported parity %q", opts.Parity)
	}

	return mode, nil
}
