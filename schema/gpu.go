package schema

// Region describes a rectangular subarea of a framebuffer, in pixels.
type Region struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

type QueryDisplayInfoRequest struct {
	DisplayName string `json:"display_name"`
}

func (r *QueryDisplayInfoRequest) Marshal() ([]byte, error) { return marshal(r) }
func (r *QueryDisplayInfoRequest) Unmarshal(b []byte) error { return unmarshal(b, r) }

type QueryDisplayInfoResponse struct {
	Result Result `json:"result"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

func (r *QueryDisplayInfoResponse) Marshal() ([]byte, error) { return marshal(r) }
func (r *QueryDisplayInfoResponse) Unmarshal(b []byte) error { return unmarshal(b, r) }

// PostBufferRequest copies BufferData into the framebuffer subrectangle
// described by Region. len(BufferData) must equal Region.W*Region.H*4.
type PostBufferRequest struct {
	Region     Region `json:"region"`
	BufferData []byte `json:"buffer_data"`
}

func (r *PostBufferRequest) Marshal() ([]byte, error) { return marshal(r) }
func (r *PostBufferRequest) Unmarshal(b []byte) error { return unmarshal(b, r) }

type PostBufferResponse struct {
	Result Result `json:"result"`
}

func (r *PostBufferResponse) Marshal() ([]byte, error) { return marshal(r) }
func (r *PostBufferResponse) Unmarshal(b []byte) error { return unmarshal(b, r) }

type MoveCursorRequest struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

func (r *MoveCursorRequest) Marshal() ([]byte, error) { return marshal(r) }
func (r *MoveCursorRequest) Unmarshal(b []byte) error { return unmarshal(b, r) }

type MoveCursorResponse struct {
	Result Result `json:"result"`
}

func (r *MoveCursorResponse) Marshal() ([]byte, error) { return marshal(r) }
func (r *MoveCursorResponse) Unmarshal(b []byte) error { return unmarshal(b, r) }
