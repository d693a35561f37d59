package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultDevicePath is the character device created by the Raspberry Pi
	// GPIO driver.
	DefaultDevicePath = "/dev/raspGPIODr"

	// deviceSourceName is the registry name of the device source.
	deviceSourceName = "gpio"

	// toggleCommand is written to the device to make the driver switch
	// between its two input lines. The driver ignores the content.
	toggleCommand = "a"
)

// DeviceSource reads samples from the GPIO driver's character device.
// Each read returns the selected pin state as a base-2 integer string.
type DeviceSource struct {
	path   string
	logger *slog.Logger

	// Overridable file access for testing.
	readFile     func(path string) ([]byte, error)
	openForWrite func(path string) (io.WriteCloser, error)
}

// NewDeviceSource creates a DeviceSource for the device at path.
// An empty path selects DefaultDevicePath. If logger is nil, a no-op
// logger is used.
func NewDeviceSource(path string, logger *slog.Logger) *DeviceSource {
	if path == "" {
		path = DefaultDevicePath
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &DeviceSource{
		path:     path,
		logger:   logger,
		readFile: os.ReadFile,
		openForWrite: func(path string) (io.WriteCloser, error) {
			return os.OpenFile(path, os.O_WRONLY, 0)
		},
	}
}

// Name returns the source's unique identifier.
func (d *DeviceSource) Name() string {
	return deviceSourceName
}

// Path returns the device file path.
func (d *DeviceSource) Path() string {
	return d.path
}

// Read reads the device and parses its content as a base-2 integer.
func (d *DeviceSource) Read(ctx context.Context) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	raw, err := d.readFile(d.path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", d.path, err)
	}

	v, err := parseBinarySample(string(raw))
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", d.path, err)
	}
	return v, nil
}

// Toggle writes the toggle command to the device.
func (d *DeviceSource) Toggle(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	f, err := d.openForWrite(d.path)
	if err != nil {
		return fmt.Errorf("open %s for writing: %w", d.path, err)
	}

	if _, err := io.WriteString(f, toggleCommand); err != nil {
		f.Close()
		return fmt.Errorf("write toggle to %s: %w", d.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", d.path, err)
	}

	d.logger.Info("toggled device signal", "path", d.path)
	return nil
}

// parseBinarySample interprets s as a base-2 integer, ignoring surrounding
// whitespace and NUL padding.
func parseBinarySample(s string) (float64, error) {
	s = strings.TrimSpace(strings.Trim(s, "\x00"))
	if s == "" {
		return 0, fmt.Errorf("%w: empty device content", ErrMalformedSample)
	}

	v, err := strconv.ParseInt(s, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a binary number", ErrMalformedSample, s)
	}
	return float64(v), nil
}

// Compile-time interface compliance checks.
var (
	_ Source  = (*DeviceSource)(nil)
	_ Toggler = (*DeviceSource)(nil)
)
