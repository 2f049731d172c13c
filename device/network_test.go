package device

import (
	"testing"

	"github.com/moodyhunter/virtiod/schema"
	"github.com/moodyhunter/virtiod/virtio"
)

func TestNetworkServerGetMacAddress(t *testing.T) {
	mac := [6]byte{0x52, 0x54, 0x00, 0x12, 0x34, 0x56}
	dev := virtio.NewFakeNetDevice(mac)
	srv := NewNetworkServer(dev)

	req := &schema.GetMacAddressRequest{}
	reqBytes, err := req.Marshal()
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	respBytes, err := srv.handleGetMacAddress(reqBytes)
	if err != nil {
		t.Fatalf("handleGetMacAddress returned error: %v", err)
	}
	var resp schema.GetMacAddressResponse
	if err := resp.Unmarshal(respBytes); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Result.Success {
		t.Fatalf("get_mac_address failed: %s", resp.Result.Error)
	}
	if resp.Mac != mac {
		t.Errorf("mac = %x, want %x", resp.Mac, mac)
	}
}
