package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// RequestMagic is "RPC>" read as a big-endian u32 (magics are big-endian so
// they read as ASCII left-to-right in a hex dump; everything else on the
// wire is little-endian — see Arg.encodeInto and ArgReader.argAt below).
const RequestMagic uint32 = 0x5250433E

// ArgMagic is "RPCA" read as a big-endian u32.
const ArgMagic uint32 = 0x52504341

const requestFixedHeaderSize = 16 // magic(4) + call_id(4) + function_id(4) + arg_count(4)

// Arg is one already-encoded argument TLV, ready to append to a request.
type Arg struct {
	Type ArgType
	Data []byte
}

func NewFloat32Arg(v float32) Arg {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	return Arg{Type: ArgFloat32, Data: buf[:]}
}

func NewFloat64Arg(v float64) Arg {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return Arg{Type: ArgFloat64, Data: buf[:]}
}

func NewInt8Arg(v int8) Arg   { return Arg{Type: ArgInt8, Data: []byte{byte(v)}} }
func NewUint8Arg(v uint8) Arg { return Arg{Type: ArgUint8, Data: []byte{v}} }

func NewInt16Arg(v int16) Arg {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	return Arg{Type: ArgInt16, Data: buf[:]}
}

func NewUint16Arg(v uint16) Arg {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return Arg{Type: ArgUint16, Data: buf[:]}
}

func NewInt32Arg(v int32) Arg {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return Arg{Type: ArgInt32, Data: buf[:]}
}

func NewUint32Arg(v uint32) Arg {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return Arg{Type: ArgUint32, Data: buf[:]}
}

func NewInt64Arg(v int64) Arg {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return Arg{Type: ArgInt64, Data: buf[:]}
}

func NewUint64Arg(v uint64) Arg {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return Arg{Type: ArgUint64, Data: buf[:]}
}

// NewStringArg encodes s as UTF-8 plus a trailing NUL; size counts the NUL,
// per the wire contract.
func NewStringArg(s string) Arg {
	data := make([]byte, len(s)+1)
	copy(data, s)
	return Arg{Type: ArgString, Data: data}
}

func NewBufferArg(b []byte) Arg {
	return Arg{Type: ArgBuffer, Data: b}
}

func (a Arg) encodeInto(buf []byte) []byte {
	var hdr [argTypeHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:4], ArgMagic)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(a.Type))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(a.Data)))
	buf = append(buf, hdr[:]...)
	buf = append(buf, a.Data...)
	return buf
}

// EncodeRequest builds a full request frame payload per §3: magic, call_id,
// function_id, arg_count, followed by each argument's TLV in order.
func EncodeRequest(callID, functionID uint32, args []Arg) []byte {
	size := requestFixedHeaderSize
	for _, a := range args {
		size += argTypeHeaderSize + len(a.Data)
	}

	buf := make([]byte, 0, size)
	var hdr [requestFixedHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:4], RequestMagic)
	binary.LittleEndian.PutUint32(hdr[4:8], callID)
	binary.LittleEndian.PutUint32(hdr[8:12], functionID)
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(len(args)))
	buf = append(buf, hdr[:]...)

	for _, a := range args {
		buf = a.encodeInto(buf)
	}
	return buf
}

// DecodedRequest is the result of decoding a request frame's fixed header.
// Argument bytes are kept as a raw region and extracted lazily by index
// (§4.2: "O(n) in the index ... implementations MAY cache offsets") rather
// than eagerly parsed into a slice.
type DecodedRequest struct {
	CallID     uint32
	FunctionID uint32
	ArgCount   uint32
	argsRegion []byte
}

// DecodeRequest parses a request frame payload's fixed header. call_id,
// function_id, and arg_count are extracted positionally regardless of
// whether the magic is valid — matching the wire format's fixed-offset
// layout — so a caller handling ErrBadMagic can still echo CallID in its
// InvalidArg response. Fields beyond the magic check are not otherwise
// validated; use Args() to get an ArgReader for the argument region.
func DecodeRequest(payload []byte) (*DecodedRequest, error) {
	if len(payload) < requestFixedHeaderSize {
		return nil, ErrTruncated
	}

	req := &DecodedRequest{
		CallID:     binary.LittleEndian.Uint32(payload[4:8]),
		FunctionID: binary.LittleEndian.Uint32(payload[8:12]),
		ArgCount:   binary.LittleEndian.Uint32(payload[12:16]),
		argsRegion: payload[requestFixedHeaderSize:],
	}

	magic := binary.BigEndian.Uint32(payload[0:4])
	if magic != RequestMagic {
		return req, ErrBadMagic
	}
	return req, nil
}

// Args returns a reader over this request's argument TLVs.
func (d *DecodedRequest) Args() *ArgReader {
	return &ArgReader{region: d.argsRegion, count: d.ArgCount}
}

// ArgReader extracts argument TLVs from a raw argument region by index.
// Each call to a Get* method walks the region from the start — arguments
// are variable-width and not indexed — so callers extracting many
// arguments should do so once per handler invocation, not in a hot loop.
type ArgReader struct {
	region []byte
	count  uint32
}

// Count returns the number of argument TLVs the header declared.
func (r *ArgReader) Count() uint32 { return r.count }

// argAt walks to the index'th TLV and returns its declared type and data.
func (r *ArgReader) argAt(index uint32) (ArgType, []byte, error) {
	if index >= r.count {
		return 0, nil, ErrTruncated
	}

	data := r.region
	for i := uint32(0); i < index; i++ {
		if len(data) < argTypeHeaderSize {
			return 0, nil, ErrTruncated
		}
		if binary.BigEndian.Uint32(data[0:4]) != ArgMagic {
			return 0, nil, ErrBadMagic
		}
		size := binary.LittleEndian.Uint32(data[8:12])
		data = data[argTypeHeaderSize:]
		if uint32(len(data)) < size {
			return 0, nil, ErrTruncated
		}
		data = data[size:]
	}

	if len(data) < argTypeHeaderSize {
		return 0, nil, ErrTruncated
	}
	if binary.BigEndian.Uint32(data[0:4]) != ArgMagic {
		return 0, nil, ErrBadMagic
	}
	argType := ArgType(binary.LittleEndian.Uint32(data[4:8]))
	size := binary.LittleEndian.Uint32(data[8:12])
	data = data[argTypeHeaderSize:]
	if uint32(len(data)) < size {
		return 0, nil, ErrTruncated
	}
	return argType, data[:size], nil
}

// Expect validates that the argument at index has the declared type and
// returns its raw bytes.
func (r *ArgReader) Expect(index uint32, want ArgType) ([]byte, error) {
	got, data, err := r.argAt(index)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, ErrArgTypeMismatch
	}
	return data, nil
}

func (r *ArgReader) GetString(index uint32) (string, error) {
	data, err := r.Expect(index, ArgString)
	if err != nil {
		return "", err
	}
	if len(data) == 0 || data[len(data)-1] != 0x00 {
		return "", ErrBadUTF8
	}
	if !utf8.Valid(data[:len(data)-1]) {
		return "", ErrBadUTF8
	}
	return string(data[:len(data)-1]), nil
}

func (r *ArgReader) GetBuffer(index uint32) ([]byte, error) {
	return r.Expect(index, ArgBuffer)
}

func (r *ArgReader) GetInt8(index uint32) (int8, error) {
	data, err := r.Expect(index, ArgInt8)
	if err != nil {
		return 0, err
	}
	if len(data) < 1 {
		return 0, ErrTruncated
	}
	return int8(data[0]), nil
}

func (r *ArgReader) GetUint8(index uint32) (uint8, error) {
	data, err := r.Expect(index, ArgUint8)
	if err != nil {
		return 0, err
	}
	if len(data) < 1 {
		return 0, ErrTruncated
	}
	return data[0], nil
}

func (r *ArgReader) GetInt16(index uint32) (int16, error) {
	data, err := r.Expect(index, ArgInt16)
	if err != nil {
		return 0, err
	}
	if len(data) < 2 {
		return 0, ErrTruncated
	}
	return int16(binary.LittleEndian.Uint16(data)), nil
}

func (r *ArgReader) GetUint16(index uint32) (uint16, error) {
	data, err := r.Expect(index, ArgUint16)
	if err != nil {
		return 0, err
	}
	if len(data) < 2 {
		return 0, ErrTruncated
	}
	return binary.LittleEndian.Uint16(data), nil
}

func (r *ArgReader) GetInt32(index uint32) (int32, error) {
	data, err := r.Expect(index, ArgInt32)
	if err != nil {
		return 0, err
	}
	if len(data) < 4 {
		return 0, ErrTruncated
	}
	return int32(binary.LittleEndian.Uint32(data)), nil
}

func (r *ArgReader) GetUint32(index uint32) (uint32, error) {
	data, err := r.Expect(index, ArgUint32)
	if err != nil {
		return 0, err
	}
	if len(data) < 4 {
		return 0, ErrTruncated
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (r *ArgReader) GetInt64(index uint32) (int64, error) {
	data, err := r.Expect(index, ArgInt64)
	if err != nil {
		return 0, err
	}
	if len(data) < 8 {
		return 0, ErrTruncated
	}
	return int64(binary.LittleEndian.Uint64(data)), nil
}

func (r *ArgReader) GetUint64(index uint32) (uint64, error) {
	data, err := r.Expect(index, ArgUint64)
	if err != nil {
		return 0, err
	}
	if len(data) < 8 {
		return 0, ErrTruncated
	}
	return binary.LittleEndian.Uint64(data), nil
}

func (r *ArgReader) GetFloat32(index uint32) (float32, error) {
	data, err := r.Expect(index, ArgFloat32)
	if err != nil {
		return 0, err
	}
	if len(data) < 4 {
		return 0, ErrTruncated
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(data)), nil
}

func (r *ArgReader) GetFloat64(index uint32) (float64, error) {
	data, err := r.Expect(index, ArgFloat64)
	if err != nil {
		return 0, err
	}
	if len(data) < 8 {
		return 0, ErrTruncated
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data)), nil
}

// ArgTypeAt returns the declared type of the argument at index without
// validating it against an expectation. Used by the dispatcher to check
// argtypes against a function's declared arity before invoking the handler.
func (r *ArgReader) ArgTypeAt(index uint32) (ArgType, error) {
	t, _, err := r.argAt(index)
	return t, err
}
