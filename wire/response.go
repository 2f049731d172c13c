package wire

import "encoding/binary"

// ResponseMagic is "RPC<" read as a big-endian u32.
const ResponseMagic uint32 = 0x5250433C

// Response fixed header layout: magic(4) + call_id(4) + result_code(4) + data_size(8) = 20 bytes.
const responseHeaderSize = 4 + 4 + 4 + 8

// EncodeResponse builds a full response frame payload per §3.
func EncodeResponse(callID uint32, result ResultCode, data []byte) []byte {
	buf := make([]byte, 0, responseHeaderSize+len(data))
	var hdr [responseHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:4], ResponseMagic)
	binary.LittleEndian.PutUint32(hdr[4:8], callID)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(result))
	binary.LittleEndian.PutUint64(hdr[12:20], uint64(len(data)))
	buf = append(buf, hdr[:]...)
	buf = append(buf, data...)
	return buf
}

// DecodedResponse is the parsed form of a response frame.
type DecodedResponse struct {
	CallID     uint32
	ResultCode ResultCode
	Data       []byte
}

// DecodeResponse parses and validates a response frame payload.
func DecodeResponse(payload []byte) (*DecodedResponse, error) {
	if len(payload) < responseHeaderSize {
		return nil, ErrTruncated
	}

	magic := binary.BigEndian.Uint32(payload[0:4])
	if magic != ResponseMagic {
		return nil, ErrBadMagic
	}

	callID := binary.LittleEndian.Uint32(payload[4:8])
	rawResult := binary.LittleEndian.Uint32(payload[8:12])
	if rawResult > uint32(CallidMismatch) {
		return nil, ErrUnknownResult
	}
	dataSize := binary.LittleEndian.Uint64(payload[12:20])

	rest := payload[responseHeaderSize:]
	if uint64(len(rest)) < dataSize {
		return nil, ErrTruncated
	}

	return &DecodedResponse{
		CallID:     callID,
		ResultCode: ResultCode(rawResult),
		Data:       rest[:dataSize],
	}, nil
}
