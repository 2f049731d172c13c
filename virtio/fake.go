package virtio

import "fmt"

// FakeBlockDevice is an in-memory BlockDevice for tests: a flat byte slice
// sized nBlocks*blockSize.
type FakeBlockDevice struct {
	blockSize uint32
	data      []byte
	closed    bool
}

// NewFakeBlockDevice allocates an all-zero backing store of nBlocks blocks.
func NewFakeBlockDevice(blockSize uint32, nBlocks uint64) *FakeBlockDevice {
	return &FakeBlockDevice{blockSize: blockSize, data: make([]byte, blockSize*uint32(nBlocks))}
}

func (d *FakeBlockDevice) Close() error { d.closed = true; return nil }
func (d *FakeBlockDevice) BlockSize() uint32 { return d.blockSize }

func (d *FakeBlockDevice) ReadBlocks(nBOffset uint64, nBlocks uint32) ([]byte, error) {
	start := nBOffset * uint64(d.blockSize)
	end := start + uint64(nBlocks)*uint64(d.blockSize)
	if end > uint64(len(d.data)) {
		return nil, fmt.Errorf("virtio: read [%d,%d) out of range (device has %d bytes)", start, end, len(d.data))
	}
	out := make([]byte, end-start)
	copy(out, d.data[start:end])
	return out, nil
}

func (d *FakeBlockDevice) WriteBlocks(nBOffset uint64, data []byte) error {
	start := nBOffset * uint64(d.blockSize)
	end := start + uint64(len(data))
	if end > uint64(len(d.data)) {
		return fmt.Errorf("virtio: write [%d,%d) out of range (device has %d bytes)", start, end, len(d.data))
	}
	copy(d.data[start:end], data)
	return nil
}

// FakeGPUDevice is an in-memory GPUDevice for tests.
type FakeGPUDevice struct {
	width, height uint32
	fb            []byte
	flushCount    int
	cursor        []byte
	cursorW       uint32
	cursorH       uint32
	cursorX       uint32
	cursorY       uint32
}

// NewFakeGPUDevice allocates a width*height*4-byte RGBA framebuffer.
func NewFakeGPUDevice(width, height uint32) *FakeGPUDevice {
	return &FakeGPUDevice{width: width, height: height, fb: make([]byte, int(width)*int(height)*4)}
}

func (d *FakeGPUDevice) Close() error { return nil }

func (d *FakeGPUDevice) DisplayInfo(displayName string) (uint32, uint32, error) {
	return d.width, d.height, nil
}

func (d *FakeGPUDevice) Framebuffer() []byte { return d.fb }

func (d *FakeGPUDevice) Flush() error { d.flushCount++; return nil }

func (d *FakeGPUDevice) FlushCount() int { return d.flushCount }

func (d *FakeGPUDevice) SetCursor(image []byte, w, h uint32) error {
	d.cursor = append([]byte(nil), image...)
	d.cursorW, d.cursorH = w, h
	return nil
}

func (d *FakeGPUDevice) MoveCursor(x, y uint32) error {
	d.cursorX, d.cursorY = x, y
	return nil
}

// FakeNetDevice is an in-memory NetDevice for tests.
type FakeNetDevice struct {
	mac [6]byte
}

// NewFakeNetDevice returns a FakeNetDevice reporting the given MAC.
func NewFakeNetDevice(mac [6]byte) *FakeNetDevice {
	return &FakeNetDevice{mac: mac}
}

func (d *FakeNetDevice) Close() error { return nil }

func (d *FakeNetDevice) MACAddress() ([6]byte, error) { return d.mac, nil }
