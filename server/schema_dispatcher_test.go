package server

import (
	"bytes"
	"sync"
	"testing"

	"github.com/moodyhunter/virtiod/wire"
)

func newEchoSchemaDispatcher() *SchemaDispatcher {
	d := NewSchemaDispatcher(&sync.Mutex{})
	d.Register(1, func(reqData []byte) ([]byte, error) {
		return reqData, nil
	})
	return d
}

func TestSchemaHandleRequestSuccess(t *testing.T) {
	d := newEchoSchemaDispatcher()
	payload := wire.EncodeRequest(1, 1, []wire.Arg{wire.NewBufferArg([]byte("hello"))})

	resp := d.handleRequest(payload)
	decoded, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.ResultCode != wire.Ok {
		t.Fatalf("got %v, want Ok", decoded.ResultCode)
	}
	if !bytes.Equal(decoded.Data, []byte("hello")) {
		t.Errorf("data = %q, want %q", decoded.Data, "hello")
	}
}

func TestSchemaRejectsWrongArgCount(t *testing.T) {
	d := newEchoSchemaDispatcher()
	payload := wire.EncodeRequest(1, 1, []wire.Arg{
		wire.NewBufferArg([]byte("a")),
		wire.NewBufferArg([]byte("b")),
	})

	resp := d.handleRequest(payload)
	decoded, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.ResultCode != wire.InvalidArg {
		t.Errorf("got %v, want InvalidArg", decoded.ResultCode)
	}
}

func TestSchemaUnknownFunction(t *testing.T) {
	d := newEchoSchemaDispatcher()
	payload := wire.EncodeRequest(1, 999, []wire.Arg{wire.NewBufferArg([]byte("x"))})

	resp := d.handleRequest(payload)
	decoded, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.ResultCode != wire.ServerInvalidFunction {
		t.Errorf("got %v, want ServerInvalidFunction", decoded.ResultCode)
	}
}

func TestSchemaHandlerErrorMapsToServerInternalError(t *testing.T) {
	d := NewSchemaDispatcher(&sync.Mutex{})
	d.Register(1, func(reqData []byte) ([]byte, error) {
		return nil, errDummy
	})

	payload := wire.EncodeRequest(1, 1, []wire.Arg{wire.NewBufferArg([]byte("x"))})
	resp := d.handleRequest(payload)
	decoded, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.ResultCode != wire.ServerInternalError {
		t.Errorf("got %v, want ServerInternalError", decoded.ResultCode)
	}
}

var errDummy = &dummyError{"boom"}

type dummyError struct{ msg string }

func (e *dummyError) Error() string { return e.msg }
