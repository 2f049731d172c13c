// Package codec provides the serialization layer for schema messages.
//
// A schema message (spec §3 Glossary) is an opaque, externally-defined
// encoded message carried inside a single Buffer argument. The real
// protobuf compiler this spec's schema messages are modeled after is an
// out-of-scope external collaborator (§1), so schema types in the schema
// package encode themselves with this package's JSONCodec instead — the
// same choice the teacher made for its own RPCMessage payloads.
package codec

// Codec is the interface for serialization/deserialization of schema
// message bodies. Kept as an interface, not a bare function pair, so a
// future wire-compatible codec (e.g. a generated protobuf codec) can be
// swapped in without touching the schema package.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// Default is the codec schema messages use unless told otherwise.
var Default Codec = &JSONCodec{}
