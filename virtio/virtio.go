// Package virtio declares the boundary this driver runtime has with the
// borrowed upstream VirtIO device library (transport negotiation,
// virtqueues, device-specific registers) that spec §1 names as out of
// scope for this repo. The interfaces here are what device/ programs
// against; FakeBlockDevice, FakeGPUDevice and FakeNetDevice are in-memory
// stand-ins so device/ can be tested without the real library linked in.
package virtio

// Transport is the per-device handle the upstream library would hand back
// after negotiating a VirtIO device over a pci.BAR + hal.Hal pair. It is
// deliberately minimal: device/ only needs enough of a transport to issue
// the block/GPU/network operations named in spec §4.7.
type Transport interface {
	// Close releases any virtqueues and MMIO mappings held by the
	// transport.
	Close() error
}

// BlockDevice is the subset of a negotiated VirtIO block device that
// device.BlockServer drives.
type BlockDevice interface {
	Transport

	// BlockSize is the device's logical block size in bytes (spec §4.7:
	// 512 for this driver).
	BlockSize() uint32

	// ReadBlocks reads nBlocks blocks starting at block offset nBOffset
	// into a freshly allocated buffer.
	ReadBlocks(nBOffset uint64, nBlocks uint32) ([]byte, error)

	// WriteBlocks writes data (already validated to be an exact multiple
	// of BlockSize()) starting at block offset nBOffset.
	WriteBlocks(nBOffset uint64, data []byte) error
}

// GPUDevice is the subset of a negotiated VirtIO GPU device that
// device.GPUServer drives.
type GPUDevice interface {
	Transport

	// DisplayInfo returns the named display's resolution.
	DisplayInfo(displayName string) (width, height uint32, err error)

	// Framebuffer returns the driver-owned scanout buffer, width*height*4
	// bytes, row-major RGBA. Writes to it must be followed by Flush.
	Framebuffer() []byte

	// Flush pushes pending framebuffer writes to the display.
	Flush() error

	// SetCursor installs a w*h RGBA cursor image.
	SetCursor(image []byte, w, h uint32) error

	// MoveCursor repositions the installed cursor.
	MoveCursor(x, y uint32) error
}

// NetDevice is the subset of a negotiated VirtIO network device that
// device.NetworkServer drives. Packet I/O is a Non-goal (spec §4.7); only
// the MAC address is exposed.
type NetDevice interface {
	Transport

	// MACAddress returns the device's hardware address.
	MACAddress() ([6]byte, error)
}
