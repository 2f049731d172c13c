//go:build cgo

package hal

/*
#cgo LDFLAGS: -ldma
#include "libdma.h"
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/moodyhunter/virtiod/internal/obslog"
)

// CHal bridges Hal to the external libdma C-ABI allocator (spec §4.6). It
// holds no state; every method call is independent apart from Init/Exit.
type CHal struct{}

// NewCHal returns a Hal backed by the real libdma allocator.
func NewCHal() *CHal {
	return &CHal{}
}

func (h *CHal) Init() error {
	if rc := C.libdma_init(); rc != 0 {
		return fmt.Errorf("hal: libdma_init failed: rc=%d", int(rc))
	}
	return nil
}

func (h *CHal) Exit() {
	C.libdma_exit()
}

func (h *CHal) DMAAlloc(nPages int) (uint64, []byte) {
	var phys C.uint64_t
	var virt unsafe.Pointer
	ok := C.libdma_alloc(C.size_t(nPages), &phys, &virt)
	if !bool(ok) {
		obslog.Error("hal: DMA allocation failed", "n_pages", nPages)
		panic("hal: DMA allocation failed")
	}
	buf := unsafe.Slice((*byte)(virt), nPages*pageSize)
	return uint64(phys), buf
}

func (h *CHal) DMADealloc(virt []byte, phys uint64, nPages int) bool {
	if len(virt) == 0 {
		return true
	}
	return bool(C.libdma_dealloc(unsafe.Pointer(&virt[0]), C.uint64_t(phys), C.size_t(nPages)))
}

func (h *CHal) Share(buf []byte) (uint64, bool) {
	if len(buf) == 0 {
		return 0, false
	}
	var phys C.uint64_t
	ok := C.libdma_share(unsafe.Pointer(&buf[0]), C.size_t(len(buf)), &phys)
	return uint64(phys), bool(ok)
}

func (h *CHal) Unshare(phys uint64, buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	return bool(C.libdma_unshare(C.uint64_t(phys), unsafe.Pointer(&buf[0]), C.size_t(len(buf))))
}

func (h *CHal) MMIOPhysToVirt(phys uint64, sizeBytes int) uintptr {
	nPages := pagesFor(sizeBytes)
	v := C.libdma_map_physical_address(C.uint64_t(phys), C.size_t(nPages), nil)
	if v == nil {
		obslog.Error("hal: MMIO mapping failed", "phys", phys, "size_bytes", sizeBytes)
		panic("hal: MMIO mapping failed")
	}
	return uintptr(v)
}
