// Package client implements the RPC client stub (spec §4.5): a single
// connection plus a monotonically increasing call_id sequence, building
// typed calls and the schema pb_call helper on top of wire's codec.
//
// A Stub is not safe for concurrent use — spec §4.5 requires strict FIFO
// per client stub, and §5 says a shared stub must be wrapped in mutual
// exclusion by its caller. This mirrors the teacher's "transports are
// SHARED but a single request occupies the write path briefly" model,
// simplified to the single-connection, non-multiplexed case spec.md wants:
// the teacher's ClientTransport (recvLoop + pending map + heartbeat) is not
// reused here (see DESIGN.md).
package client

import (
	"fmt"

	"github.com/moodyhunter/virtiod/schema"
	"github.com/moodyhunter/virtiod/transport"
	"github.com/moodyhunter/virtiod/wire"
)

// Stub is a client-side connection to one RPC server.
type Stub struct {
	ch        *transport.Channel
	callIDSeq uint32
}

// NewStub wraps an already-connected Channel. Use Dial to connect and wrap
// in one step.
func NewStub(ch *transport.Channel) *Stub {
	return &Stub{ch: ch}
}

// Dial connects to the named endpoint and returns a Stub over it.
func Dial(name string) (*Stub, error) {
	ch, err := transport.Connect(name)
	if err != nil {
		return nil, err
	}
	return NewStub(ch), nil
}

// Close closes the underlying channel.
func (s *Stub) Close() error {
	return s.ch.Close()
}

// Call is a builder for one typed call (spec §4.5 "create_call"). Append
// arguments with Arg, then invoke Exec.
type Call struct {
	stub       *Stub
	functionID uint32
	args       []wire.Arg
}

// CreateCall starts a new typed call for functionID.
func (s *Stub) CreateCall(functionID uint32) *Call {
	return &Call{stub: s, functionID: functionID}
}

// Arg appends one already-constructed argument (see wire.NewUint32Arg etc).
func (c *Call) Arg(a wire.Arg) *Call {
	c.args = append(c.args, a)
	return c
}

// CallIDMismatchError means the response's call_id didn't echo the
// request's, per spec §3 Invariants.
type CallIDMismatchError struct {
	Sent, Got uint32
}

func (e *CallIDMismatchError) Error() string {
	return fmt.Sprintf("client: call_id mismatch: sent %d, got %d", e.Sent, e.Got)
}

// ResultError wraps a non-Ok result_code returned by the server.
type ResultError struct {
	Code wire.ResultCode
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("client: server returned %s", e.Code)
}

// Exec implements spec §4.5's five-step call sequence: allocate a call_id,
// encode and send the request, read exactly one response, validate magic
// and call_id, and return the payload on Ok. Any other result code is
// returned as a *ResultError carrying that code.
func (c *Call) Exec() ([]byte, error) {
	c.stub.callIDSeq++
	callID := c.stub.callIDSeq

	req := wire.EncodeRequest(callID, c.functionID, c.args)
	if err := c.stub.ch.Send(req); err != nil {
		return nil, fmt.Errorf("client: send failed: %w", err)
	}

	respPayload, err := c.stub.ch.Recv()
	if err != nil {
		return nil, fmt.Errorf("client: recv failed: %w", err)
	}

	resp, err := wire.DecodeResponse(respPayload)
	if err != nil {
		return nil, err
	}
	if resp.CallID != callID {
		return nil, &CallIDMismatchError{Sent: callID, Got: resp.CallID}
	}
	if resp.ResultCode != wire.Ok {
		return nil, &ResultError{Code: resp.ResultCode}
	}
	return resp.Data, nil
}

// PBCall is the schema helper (spec §4.5 "pb_call"): it encodes req to a
// single Buffer argument, executes the call, and unmarshals the response
// payload into resp. A missing payload on Ok is an error.
func PBCall(s *Stub, functionID uint32, req schema.Message, resp schema.Message) error {
	reqData, err := req.Marshal()
	if err != nil {
		return fmt.Errorf("client: marshal request: %w", err)
	}

	data, err := s.CreateCall(functionID).Arg(wire.NewBufferArg(reqData)).Exec()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("client: empty payload on Ok response")
	}
	return resp.Unmarshal(data)
}
