package pci

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// BAR is a memory-mapped PCI Base Address Register resource
// (/sys/bus/pci/devices/<loc>/resourceN), grounded on the example pack's
// unix.Mmap usage for mapping kernel-exposed memory windows
// (ehrlich-b-go-ublk/internal/uring/minimal.go).
type BAR struct {
	f    *os.File
	mem  []byte
	Size int
}

// OpenBAR mmaps BAR index barIndex of loc for read/write.
func OpenBAR(loc Location, barIndex int) (*BAR, error) {
	path := filepath.Join(loc.SysfsPath(), fmt.Sprintf("resource%d", barIndex))
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("pci: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pci: stat %s: %w", path, err)
	}
	size := int(info.Size())
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("pci: %s reports zero size", path)
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pci: mmap %s: %w", path, err)
	}

	return &BAR{f: f, mem: mem, Size: size}, nil
}

// Bytes returns the mapped memory region. Valid until Close.
func (b *BAR) Bytes() []byte {
	return b.mem
}

// Close unmaps the BAR and closes its backing sysfs file.
func (b *BAR) Close() error {
	err := unix.Munmap(b.mem)
	if cerr := b.f.Close(); err == nil {
		err = cerr
	}
	return err
}
