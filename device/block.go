// Package device implements the three schema-message device services named
// in spec §4.7 (block, GPU, network), each wiring a virtio.* device handle
// into a server.SchemaDispatcher under one shared mutex.
package device

import (
	"fmt"

	"github.com/moodyhunter/virtiod/internal/obslog"
	"github.com/moodyhunter/virtiod/schema"
	"github.com/moodyhunter/virtiod/server"
	"github.com/moodyhunter/virtiod/virtio"
)

const blockSize = 512

// BlockServer answers ReadBlockRequest/WriteBlockRequest schema calls
// against one virtio.BlockDevice. Serialization is provided by the
// SchemaDispatcher it's registered on, which holds the shared device mutex
// around every handler invocation (spec §4.7(c)/§5) — BlockServer itself
// holds no lock.
type BlockServer struct {
	dev virtio.BlockDevice
}

// NewBlockServer wraps dev for registration on a SchemaDispatcher.
func NewBlockServer(dev virtio.BlockDevice) *BlockServer {
	return &BlockServer{dev: dev}
}

// Register adds this server's functions to d under the given function_ids.
func (s *BlockServer) Register(d *server.SchemaDispatcher, readFunctionID, writeFunctionID uint32) {
	d.Register(readFunctionID, s.handleRead)
	d.Register(writeFunctionID, s.handleWrite)
}

func (s *BlockServer) handleRead(reqData []byte) ([]byte, error) {
	var req schema.ReadBlockRequest
	if err := req.Unmarshal(reqData); err != nil {
		return nil, fmt.Errorf("device: decode ReadBlockRequest: %w", err)
	}

	data, err := s.dev.ReadBlocks(req.NBOffset, req.NBlocks)
	if err != nil {
		resp := &schema.ReadBlockResponse{Result: schema.Err(err.Error())}
		return resp.Marshal()
	}

	resp := &schema.ReadBlockResponse{Result: schema.Ok, Data: data}
	return resp.Marshal()
}

func (s *BlockServer) handleWrite(reqData []byte) ([]byte, error) {
	var req schema.WriteBlockRequest
	if err := req.Unmarshal(reqData); err != nil {
		return nil, fmt.Errorf("device: decode WriteBlockRequest: %w", err)
	}

	if len(req.Data)%blockSize != 0 {
		resp := &schema.WriteBlockResponse{Result: schema.Err(
			fmt.Sprintf("write size %d is not a multiple of block size %d", len(req.Data), blockSize))}
		return resp.Marshal()
	}

	if err := s.dev.WriteBlocks(req.NBOffset, req.Data); err != nil {
		obslog.Warn("block write failed", "n_boffset", req.NBOffset, "error", err)
		resp := &schema.WriteBlockResponse{Result: schema.Err(err.Error())}
		return resp.Marshal()
	}

	resp := &schema.WriteBlockResponse{Result: schema.Ok}
	return resp.Marshal()
}
