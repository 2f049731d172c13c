package device

import (
	"fmt"

	"github.com/moodyhunter/virtiod/schema"
	"github.com/moodyhunter/virtiod/server"
	"github.com/moodyhunter/virtiod/virtio"
)

const (
	cursorWidth  = 64
	cursorHeight = 64
	grayLevel    = 0x80
)

// GPUServer answers query_display_info/post_buffer/move_cursor schema calls
// (spec §4.7) against one virtio.GPUDevice. Like BlockServer, locking is
// provided entirely by the owning SchemaDispatcher.
type GPUServer struct {
	dev virtio.GPUDevice
}

// NewGPUServer wraps dev and installs the uniform gray 64x64 RGBA cursor
// spec §4.7/§9 calls for, once, at construction.
func NewGPUServer(dev virtio.GPUDevice) (*GPUServer, error) {
	cursor := make([]byte, cursorWidth*cursorHeight*4)
	for i := 0; i < len(cursor); i += 4 {
		cursor[i+0] = grayLevel
		cursor[i+1] = grayLevel
		cursor[i+2] = grayLevel
		cursor[i+3] = 0xff
	}
	if err := dev.SetCursor(cursor, cursorWidth, cursorHeight); err != nil {
		return nil, fmt.Errorf("device: install cursor: %w", err)
	}
	return &GPUServer{dev: dev}, nil
}

// Register adds this server's three functions to d.
func (s *GPUServer) Register(d *server.SchemaDispatcher, queryFunctionID, postBufferFunctionID, moveCursorFunctionID uint32) {
	d.Register(queryFunctionID, s.handleQueryDisplayInfo)
	d.Register(postBufferFunctionID, s.handlePostBuffer)
	d.Register(moveCursorFunctionID, s.handleMoveCursor)
}

func (s *GPUServer) handleQueryDisplayInfo(reqData []byte) ([]byte, error) {
	var req schema.QueryDisplayInfoRequest
	if err := req.Unmarshal(reqData); err != nil {
		return nil, fmt.Errorf("device: decode QueryDisplayInfoRequest: %w", err)
	}

	width, height, err := s.dev.DisplayInfo(req.DisplayName)
	if err != nil {
		resp := &schema.QueryDisplayInfoResponse{Result: schema.Err(err.Error())}
		return resp.Marshal()
	}

	resp := &schema.QueryDisplayInfoResponse{Result: schema.Ok, Width: width, Height: height}
	return resp.Marshal()
}

// handlePostBuffer implements spec §4.7's post_buffer validation: expected
// size equals w*h*4, the region must fit within the current display, and the
// copy proceeds row by row before flushing.
func (s *GPUServer) handlePostBuffer(reqData []byte) ([]byte, error) {
	var req schema.PostBufferRequest
	if err := req.Unmarshal(reqData); err != nil {
		return nil, fmt.Errorf("device: decode PostBufferRequest: %w", err)
	}

	region := req.Region
	expectedSize := uint64(region.W) * uint64(region.H) * 4
	if uint64(len(req.BufferData)) != expectedSize {
		resp := &schema.PostBufferResponse{Result: schema.Err(
			fmt.Sprintf("buffer_data size %d does not match region %dx%d (expected %d)",
				len(req.BufferData), region.W, region.H, expectedSize))}
		return resp.Marshal()
	}

	screenW, screenH, err := s.dev.DisplayInfo("")
	if err != nil {
		resp := &schema.PostBufferResponse{Result: schema.Err(err.Error())}
		return resp.Marshal()
	}
	if uint64(region.X)+uint64(region.W) > uint64(screenW) || uint64(region.Y)+uint64(region.H) > uint64(screenH) {
		resp := &schema.PostBufferResponse{Result: schema.Err(
			fmt.Sprintf("region (%d,%d)+%dx%d exceeds screen %dx%d",
				region.X, region.Y, region.W, region.H, screenW, screenH))}
		return resp.Marshal()
	}

	fb := s.dev.Framebuffer()
	stride := int(screenW) * 4
	rowBytes := int(region.W) * 4
	for row := uint32(0); row < region.H; row++ {
		srcOff := int(row) * rowBytes
		dstOff := (int(region.Y+row))*stride + int(region.X)*4
		copy(fb[dstOff:dstOff+rowBytes], req.BufferData[srcOff:srcOff+rowBytes])
	}

	if err := s.dev.Flush(); err != nil {
		resp := &schema.PostBufferResponse{Result: schema.Err(err.Error())}
		return resp.Marshal()
	}

	resp := &schema.PostBufferResponse{Result: schema.Ok}
	return resp.Marshal()
}

func (s *GPUServer) handleMoveCursor(reqData []byte) ([]byte, error) {
	var req schema.MoveCursorRequest
	if err := req.Unmarshal(reqData); err != nil {
		return nil, fmt.Errorf("device: decode MoveCursorRequest: %w", err)
	}

	if err := s.dev.MoveCursor(req.X, req.Y); err != nil {
		resp := &schema.MoveCursorResponse{Result: schema.Err(err.Error())}
		return resp.Marshal()
	}

	resp := &schema.MoveCursorResponse{Result: schema.Ok}
	return resp.Marshal()
}
