package schema

// GetMacAddressRequest has no fields; the device handle is implicit on the
// server side (one network device per process).
type GetMacAddressRequest struct{}

func (r *GetMacAddressRequest) Marshal() ([]byte, error) { return marshal(r) }
func (r *GetMacAddressRequest) Unmarshal(b []byte) error { return unmarshal(b, r) }

type GetMacAddressResponse struct {
	Result Result `json:"result"`
	Mac    [6]byte `json:"mac"`
}

func (r *GetMacAddressResponse) Marshal() ([]byte, error) { return marshal(r) }
func (r *GetMacAddressResponse) Unmarshal(b []byte) error { return unmarshal(b, r) }
