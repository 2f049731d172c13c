// Package schema defines the hand-authored schema messages exchanged by the
// schema-message dispatcher (spec §4.4) and client stub (spec §4.5).
//
// A schema message is an opaque, externally-defined encoded message carried
// inside a single Buffer argument (spec §3 Glossary). The real .proto
// compiler these messages are modeled after is an out-of-scope external
// collaborator (spec §1); every type here is a plain Go struct with its own
// Marshal/Unmarshal pair backed by codec.Default, the same choice the
// teacher made for its own RPCMessage payloads.
package schema

import "github.com/moodyhunter/virtiod/codec"

// Message is satisfied by every schema request/response type.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

func marshal(v any) ([]byte, error) {
	return codec.Default.Encode(v)
}

func unmarshal(data []byte, v any) error {
	return codec.Default.Decode(data, v)
}

// Result is the common success/error envelope domain handlers use to convey
// a failure without resorting to a codec-level result_code (spec §7:
// "Domain-specific errors ... MUST be encoded into the handler's own
// response schema").
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Ok is the zero-value success result.
var Ok = Result{Success: true}

// Err builds a failure Result carrying msg.
func Err(msg string) Result {
	return Result{Success: false, Error: msg}
}
