package wire

import "fmt"

// ArgType is the closed, wire-frozen enumeration of argument TLV payload
// kinds. The ordinal values are part of the wire contract: do not reorder,
// insert, or remove members.
type ArgType uint32

const (
	ArgFloat32 ArgType = iota
	ArgInt8
	ArgFloat64
	ArgInt16
	ArgInt32
	ArgInt64
	ArgUint8
	ArgUint16
	ArgUint32
	ArgUint64
	ArgString
	ArgBuffer
)

func (t ArgType) String() string {
	switch t {
	case ArgFloat32:
		return "Float32"
	case ArgInt8:
		return "Int8"
	case ArgFloat64:
		return "Float64"
	case ArgInt16:
		return "Int16"
	case ArgInt32:
		return "Int32"
	case ArgInt64:
		return "Int64"
	case ArgUint8:
		return "Uint8"
	case ArgUint16:
		return "Uint16"
	case ArgUint32:
		return "Uint32"
	case ArgUint64:
		return "Uint64"
	case ArgString:
		return "String"
	case ArgBuffer:
		return "Buffer"
	default:
		return fmt.Sprintf("ArgType(%d)", uint32(t))
	}
}

// argTypeHeaderSize is the byte size of one argument TLV's fixed header:
// magic(4) + argtype(4) + size(4).
const argTypeHeaderSize = 12
