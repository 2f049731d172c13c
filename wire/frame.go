// Package wire implements the binary frame codec for the RPC transport.
//
// It solves the same sticky-packet problem the teacher's protocol package
// solved, but with the spec's simpler framing: every frame on the wire is a
// bare u64 little-endian length prefix followed by exactly that many bytes
// of payload. There is no magic, version, or codec-type byte at the frame
// layer — those live one level up, inside the request/response payload
// itself (see request.go, response.go).
//
// Frame format:
//
//	0                 8
//	┌─────────────────┬───────────────┐
//	│ length (u64 LE)  │ payload ...   │
//	└─────────────────┴───────────────┘
package wire

import (
	"encoding/binary"
	"io"
)

// LengthPrefixSize is the byte width of the frame's length prefix.
const LengthPrefixSize = 8

// EncodeFrame writes a length-prefixed frame to w. The write is all-or-error:
// a partial write anywhere means the connection is no longer usable.
func EncodeFrame(w io.Writer, payload []byte) error {
	var lenBuf [LengthPrefixSize]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// DecodeFrame reads one length-prefixed frame from r. A short read on either
// the length prefix or the body surfaces as io.ErrUnexpectedEOF, matching the
// transport contract's "short read is fatal" rule. io.EOF is returned only
// when r ends before the first byte of the length prefix.
func DecodeFrame(r io.Reader) ([]byte, error) {
	var lenBuf [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	length := binary.LittleEndian.Uint64(lenBuf[:])
	if length == 0 {
		return []byte{}, nil
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return payload, nil
}
