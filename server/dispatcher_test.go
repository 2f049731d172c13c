package server

import (
	"bytes"
	"testing"

	"github.com/moodyhunter/virtiod/middleware"
	"github.com/moodyhunter/virtiod/wire"
)

func newEchoDispatcher() *Dispatcher {
	d := NewDispatcher()
	d.Register(1, []wire.ArgType{wire.ArgString}, func(args *wire.ArgReader) ([]byte, error) {
		s, err := args.GetString(0)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	})
	return d
}

func TestHandleRequestUnknownFunction(t *testing.T) {
	d := newEchoDispatcher()

	payload := wire.EncodeRequest(1, 999, nil)
	resp := d.handleRequest(payload, middleware.Chain())

	decoded, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.ResultCode != wire.ServerInvalidFunction {
		t.Errorf("got %v, want ServerInvalidFunction", decoded.ResultCode)
	}
}

func TestHandleRequestWrongMagic(t *testing.T) {
	d := newEchoDispatcher()
	payload := wire.EncodeRequest(7, 1, []wire.Arg{wire.NewStringArg("hi")})
	corrupted := append([]byte{}, payload...)
	corrupted[0] ^= 0xff

	resp := d.handleRequest(corrupted, middleware.Chain())
	decoded, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.ResultCode != wire.InvalidArg {
		t.Errorf("got %v, want InvalidArg", decoded.ResultCode)
	}
	if decoded.CallID != 7 {
		t.Errorf("call_id = %d, want 7 (echoed positionally despite bad magic)", decoded.CallID)
	}
}

func TestHandleRequestArityMismatch(t *testing.T) {
	d := newEchoDispatcher()
	payload := wire.EncodeRequest(1, 1, nil) // declares arity 1, sends 0 args

	resp := d.handleRequest(payload, middleware.Chain())
	decoded, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.ResultCode != wire.InvalidArg {
		t.Errorf("got %v, want InvalidArg", decoded.ResultCode)
	}
}

func TestHandleRequestSuccess(t *testing.T) {
	d := newEchoDispatcher()
	payload := wire.EncodeRequest(5, 1, []wire.Arg{wire.NewStringArg("héllo")})

	resp := d.handleRequest(payload, middleware.Chain())
	decoded, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.ResultCode != wire.Ok {
		t.Fatalf("got %v, want Ok", decoded.ResultCode)
	}
	if decoded.CallID != 5 {
		t.Errorf("call_id = %d, want 5", decoded.CallID)
	}
	if !bytes.Equal(decoded.Data, []byte("héllo")) {
		t.Errorf("data = %q, want %q", decoded.Data, "héllo")
	}
}

func TestCorrelationThreeSequentialCalls(t *testing.T) {
	d := newEchoDispatcher()
	chain := middleware.Chain()

	for i, callID := range []uint32{1, 2, 3} {
		payload := wire.EncodeRequest(callID, 1, []wire.Arg{wire.NewStringArg("x")})
		resp := d.handleRequest(payload, chain)
		decoded, err := wire.DecodeResponse(resp)
		if err != nil {
			t.Fatalf("call %d: DecodeResponse failed: %v", i, err)
		}
		if decoded.CallID != callID {
			t.Errorf("call %d: call_id = %d, want %d", i, decoded.CallID, callID)
		}
	}
}
