// Package pci resolves a PCI device location to its config-space and BAR
// resources under Linux's sysfs (spec §4.6/§4.7's "<bus>:<dev>:<func>"
// naming), grounded on the example pack's syscall-level device access
// (ehrlich-b-go-ublk's golang.org/x/sys/unix usage for mmap/ioctl).
package pci

import "fmt"

// Location identifies a PCI function by its bus/device/function triple.
type Location struct {
	Bus  uint32
	Dev  uint32
	Func uint32
}

// Pack encodes the location the way the spec's legacy --location flag does:
// bus<<16 | dev<<8 | func.
func (l Location) Pack() uint32 {
	return l.Bus<<16 | l.Dev<<8 | l.Func
}

// Unpack decodes a packed --location value into its Bus/Dev/Func fields.
func Unpack(packed uint32) Location {
	return Location{
		Bus:  (packed >> 16) & 0xff,
		Dev:  (packed >> 8) & 0xff,
		Func: packed & 0xff,
	}
}

// String renders "<bus>:<dev>:<func>", each field two hex digits, the
// suffix used in per-device server names (spec §6: "blockdev.virtio.<loc>",
// "netdev.virtio.<loc>"; spec §8 scenario 1: "blockdev.virtio.00:01:00"),
// matching original_source/.../netdev.rs's
// `format!("{:02x}:{:02x}:{:02x}", func.bus, func.device, func.function)`.
func (l Location) String() string {
	return fmt.Sprintf("%02x:%02x:%02x", l.Bus, l.Dev, l.Func)
}

// DeviceName derives a device's registration/server name per spec §4.7:
// "<kind>.<bus>:<dev>:<func>".
func DeviceName(kind string, loc Location) string {
	return fmt.Sprintf("%s.%s", kind, loc)
}

// SysfsPath is the sysfs directory for this function's PCI device, e.g.
// /sys/bus/pci/devices/0000:00:03.0.
func (l Location) SysfsPath() string {
	return fmt.Sprintf("/sys/bus/pci/devices/0000:%02x:%02x.%x", l.Bus, l.Dev, l.Func)
}
