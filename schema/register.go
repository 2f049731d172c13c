package schema

// RegisterBlockDeviceRequest registers a block device server under Name
// (e.g. "blockdev.virtio.00:01:00") with mos.blockdev-manager.
type RegisterBlockDeviceRequest struct {
	Name string `json:"name"`
}

func (r *RegisterBlockDeviceRequest) Marshal() ([]byte, error) { return marshal(r) }
func (r *RegisterBlockDeviceRequest) Unmarshal(b []byte) error { return unmarshal(b, r) }

type RegisterBlockDeviceResponse struct {
	Result Result `json:"result"`
}

func (r *RegisterBlockDeviceResponse) Marshal() ([]byte, error) { return marshal(r) }
func (r *RegisterBlockDeviceResponse) Unmarshal(b []byte) error { return unmarshal(b, r) }

type RegisterGPUDeviceRequest struct {
	Name string `json:"name"`
}

func (r *RegisterGPUDeviceRequest) Marshal() ([]byte, error) { return marshal(r) }
func (r *RegisterGPUDeviceRequest) Unmarshal(b []byte) error { return unmarshal(b, r) }

type RegisterGPUDeviceResponse struct {
	Result Result `json:"result"`
}

func (r *RegisterGPUDeviceResponse) Marshal() ([]byte, error) { return marshal(r) }
func (r *RegisterGPUDeviceResponse) Unmarshal(b []byte) error { return unmarshal(b, r) }

// RegisterNetworkDeviceRequest registers with mos.networkd, advertising the
// device's MAC address at registration time.
type RegisterNetworkDeviceRequest struct {
	Name string  `json:"name"`
	Mac  [6]byte `json:"mac"`
}

func (r *RegisterNetworkDeviceRequest) Marshal() ([]byte, error) { return marshal(r) }
func (r *RegisterNetworkDeviceRequest) Unmarshal(b []byte) error { return unmarshal(b, r) }

type RegisterNetworkDeviceResponse struct {
	Result Result `json:"result"`
}

func (r *RegisterNetworkDeviceResponse) Marshal() ([]byte, error) { return marshal(r) }
func (r *RegisterNetworkDeviceResponse) Unmarshal(b []byte) error { return unmarshal(b, r) }
