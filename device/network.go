package device

import (
	"fmt"

	"github.com/moodyhunter/virtiod/schema"
	"github.com/moodyhunter/virtiod/server"
	"github.com/moodyhunter/virtiod/virtio"
)

// NetworkServer answers GetMacAddressRequest schema calls against one
// virtio.NetDevice. Packet I/O is a Non-goal per spec §4.7; this is the one
// read-only operation exposed.
type NetworkServer struct {
	dev virtio.NetDevice
}

// NewNetworkServer wraps dev for registration on a SchemaDispatcher.
func NewNetworkServer(dev virtio.NetDevice) *NetworkServer {
	return &NetworkServer{dev: dev}
}

// Register adds this server's function to d.
func (s *NetworkServer) Register(d *server.SchemaDispatcher, getMacFunctionID uint32) {
	d.Register(getMacFunctionID, s.handleGetMacAddress)
}

func (s *NetworkServer) handleGetMacAddress(reqData []byte) ([]byte, error) {
	var req schema.GetMacAddressRequest
	if err := req.Unmarshal(reqData); err != nil {
		return nil, fmt.Errorf("device: decode GetMacAddressRequest: %w", err)
	}

	mac, err := s.dev.MACAddress()
	if err != nil {
		resp := &schema.GetMacAddressResponse{Result: schema.Err(err.Error())}
		return resp.Marshal()
	}

	resp := &schema.GetMacAddressResponse{Result: schema.Ok, Mac: mac}
	return resp.Marshal()
}
