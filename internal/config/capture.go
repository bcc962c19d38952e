// Package config loads the capture configuration: serial device
// parameters, acquisition wait, decode byte order, and framing mode.
// Configuration is an immutable value handed to collaborators at call
// time; there are no process-wide mutable defaults.
package config

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/iceberg.twist/internal/imu/frame"
)

// DefaultConfigPath is the path to the canonical capture defaults file.
const DefaultConfigPath = "config/capture.defaults.json"

// CaptureConfig holds the capture parameters. Pointer fields distinguish
// "unset" from zero, so partial JSON configs are safe: the Get* methods
// fall back to defaults for anything omitted.
type CaptureConfig struct {
	// Serial device params
	DevicePath  *string `json:"device_path,omitempty"`
	BaudRate    *int    `json:"baud_rate,omitempty"`
	ReadTimeout *string `json:"read_timeout,omitempty"` // duration string like "1s"

	// Acquisition params
	WaitDuration *string `json:"wait_duration,omitempty"` // duration string like "1s"

	// Decode params
	ByteOrder *string `json:"byte_order,omitempty"` // native, little, or big
	Framing   *string `json:"framing,omitempty"`    // naive or strict

	// Archive params (optional)
	ArchivePath *string `json:"archive_path,omitempty"`
}

// EmptyCaptureConfig returns a CaptureConfig with all fields unset.
func EmptyCaptureConfig() *CaptureConfig {
	return &CaptureConfig{}
}

// LoadCaptureConfig loads a CaptureConfig from a JSON file. The file must
// have a .json extension and stay under the max file size. Fields omitted
// from the JSON keep their defaults, so partial configs are safe.
func LoadCaptureConfig(path string) (*CaptureConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyCaptureConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *CaptureConfig) Validate() error {
	if c.BaudRate != nil && *c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %d", *c.BaudRate)
	}

	if c.ReadTimeout != nil && *c.ReadTimeout != "" {
		if _, err := time.ParseDuration(*c.ReadTimeout); err != nil {
			return fmt.Errorf("invalid read_timeout %q: %w", *c.ReadTimeout, err)
		}
	}

	if c.WaitDuration != nil && *c.WaitDuration != "" {
		d, err := time.ParseDuration(*c.WaitDuration)
		if err != nil {
			return fmt.Errorf("invalid wait_duration %q: %w", *c.WaitDuration, err)
		}
		if d < 0 {
			return fmt.Errorf("wait_duration must be non-negative, got %s", d)
		}
	}

	if c.ByteOrder != nil {
		switch *c.ByteOrder {
		case "", "native", "little", "big":
		default:
			return fmt.Errorf("byte_order must be native, little, or big, got %q", *c.ByteOrder)
		}
	}

	if c.Framing != nil {
		switch *c.Framing {
		case "", "naive", "strict":
		default:
			return fmt.Errorf("framing must be naive or strict, got %q", *c.Framing)
		}
	}

	return nil
}

// GetDevicePath returns the device_path value or the default.
func (c *CaptureConfig) GetDevicePath() string {
	if c.DevicePath == nil || *c.DevicePath == "" {
		return "/dev/ttyUSB1" // default
	}
	return *c.DevicePath
}

// GetBaudRate returns the baud_rate value or the default.
func (c *CaptureConfig) GetBaudRate() int {
	if c.BaudRate == nil {
		return 115200 // default
	}
	return *c.BaudRate
}

// GetReadTimeout parses and returns the ReadTimeout as a time.Duration.
func (c *CaptureConfig) GetReadTimeout() time.Duration {
	if c.ReadTimeout == nil || *c.ReadTimeout == "" {
		return time.Second // default
	}
	d, err := time.ParseDuration(*c.ReadTimeout)
	if err != nil {
		return time.Second // default on parse error
	}
	return d
}

// GetWaitDuration parses and returns the WaitDuration as a time.Duration.
func (c *CaptureConfig) GetWaitDuration() time.Duration {
	if c.WaitDuration == nil || *c.WaitDuration == "" {
		return time.Second // default
	}
	d, err := time.ParseDuration(*c.WaitDuration)
	if err != nil {
		return time.Second // default on parse error
	}
	return d
}

// GetByteOrder returns the configured binary.ByteOrder for decoding. The
// sensor protocol never declares one, so the default is the platform's
// native order.
func (c *CaptureConfig) GetByteOrder() binary.ByteOrder {
	if c.ByteOrder == nil {
		return binary.NativeEndian
	}
	switch *c.ByteOrder {
	case "little":
		return binary.LittleEndian
	case "big":
		return binary.BigEndian
	default:
		return binary.NativeEndian
	}
}

// GetFraming returns the configured framing strategy.
func (c *CaptureConfig) GetFraming() frame.FramingStrategy {
	if c.Framing != nil && *c.Framing == "strict" {
		return frame.LengthPrefixedFraming{}
	}
	return frame.NaiveFraming{}
}

// GetArchivePath returns the archive_path value, empty meaning no
// archive.
func (c *CaptureConfig) GetArchivePath() string {
	if c.ArchivePath == nil {
		return ""
	}
	return *c.ArchivePath
}
