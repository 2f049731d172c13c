package virtio

import (
	"errors"

	"github.com/moodyhunter/virtiod/hal"
	"github.com/moodyhunter/virtiod/pci"
)

// ErrUpstreamLibraryUnavailable is returned by the Open* constructors below:
// negotiating a VirtIO transport (feature bits, virtqueues, device-specific
// config space) against the upstream device library is named out of scope
// in spec §1 ("the upstream VirtIO device library" is an external
// collaborator, specified only by its contract). cmd/virtiod wires these
// constructors as the seam where that library would be linked in; a
// deployment that vendors the real library replaces this file's bodies,
// nothing else in the tree.
var ErrUpstreamLibraryUnavailable = errors.New("virtio: upstream device library not linked into this build")

// Kind identifies which device family a negotiated transport turned out to
// be, mirroring the upstream library's DeviceType (spec §4.7's
// "<kind>.<bus>:<dev>:<func>" naming: "block", "gpu", "net").
type Kind string

const (
	KindBlock Kind = "block"
	KindGPU   Kind = "gpu"
	KindNet   Kind = "net"
)

// OpenBlockDevice negotiates a VirtIO block device over bar using h for its
// DMA/MMIO needs.
func OpenBlockDevice(loc pci.Location, bar *pci.BAR, h hal.Hal) (BlockDevice, error) {
	return nil, ErrUpstreamLibraryUnavailable
}

// OpenGPUDevice negotiates a VirtIO GPU device over bar using h for its
// DMA/MMIO needs.
func OpenGPUDevice(loc pci.Location, bar *pci.BAR, h hal.Hal) (GPUDevice, error) {
	return nil, ErrUpstreamLibraryUnavailable
}

// OpenNetDevice negotiates a VirtIO network device over bar using h for its
// DMA/MMIO needs.
func OpenNetDevice(loc pci.Location, bar *pci.BAR, h hal.Hal) (NetDevice, error) {
	return nil, ErrUpstreamLibraryUnavailable
}
