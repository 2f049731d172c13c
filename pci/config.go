package pci

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigSpace reads and writes one PCI function's config-space file
// (/sys/bus/pci/devices/<loc>/config), opened once and reused for the
// lifetime of the device.
type ConfigSpace struct {
	f *os.File
}

// OpenConfigSpace opens loc's sysfs config-space file for read/write.
func OpenConfigSpace(loc Location) (*ConfigSpace, error) {
	path := filepath.Join(loc.SysfsPath(), "config")
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("pci: open config space %s: %w", path, err)
	}
	return &ConfigSpace{f: f}, nil
}

// Close releases the underlying config-space file.
func (c *ConfigSpace) Close() error {
	return c.f.Close()
}

// ReadAt reads len(p) bytes from config space starting at offset.
func (c *ConfigSpace) ReadAt(p []byte, offset int64) error {
	n, err := c.f.ReadAt(p, offset)
	if err != nil {
		return fmt.Errorf("pci: config read at %#x: %w", offset, err)
	}
	if n != len(p) {
		return fmt.Errorf("pci: config read at %#x: short read (%d of %d bytes)", offset, n, len(p))
	}
	return nil
}

// WriteAt writes p to config space starting at offset.
func (c *ConfigSpace) WriteAt(p []byte, offset int64) error {
	n, err := c.f.WriteAt(p, offset)
	if err != nil {
		return fmt.Errorf("pci: config write at %#x: %w", offset, err)
	}
	if n != len(p) {
		return fmt.Errorf("pci: config write at %#x: short write (%d of %d bytes)", offset, n, len(p))
	}
	return nil
}
