package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/moodyhunter/virtiod/internal/obslog"
	"github.com/moodyhunter/virtiod/transport"
	"github.com/moodyhunter/virtiod/wire"
)

// SchemaHandler decodes reqData, performs the call, and encodes a response.
// A non-nil error maps to ServerInternalError with no payload (spec §4.4
// step 3: "the handler returns Some(response_message) ⇒ Ok ..., or None ⇒
// ServerInternalError").
type SchemaHandler func(reqData []byte) ([]byte, error)

// SchemaDispatcher is the schema-message variant RPC server (spec §4.4): a
// narrower specialization of Dispatcher where every call carries exactly
// one Buffer argument holding an opaque encoded request message.
type SchemaDispatcher struct {
	table map[uint32]SchemaHandler
	// coreMu guards the shared core object every handler in this table
	// operates on (spec §4.7's single mutex-protected device handle).
	// Handlers must not perform blocking IPC while holding it (spec §5).
	coreMu *sync.Mutex
}

// NewSchemaDispatcher creates a schema dispatcher whose handlers will be
// invoked with coreMu held. Pass the same *sync.Mutex the device's other
// accessors use so the whole device handle is serialized, not just the RPC
// layer's view of it.
func NewSchemaDispatcher(coreMu *sync.Mutex) *SchemaDispatcher {
	return &SchemaDispatcher{table: make(map[uint32]SchemaHandler), coreMu: coreMu}
}

// Register adds a function to the table.
func (d *SchemaDispatcher) Register(functionID uint32, handler SchemaHandler) {
	if _, exists := d.table[functionID]; exists {
		panic(fmt.Sprintf("server: function_id %d already registered", functionID))
	}
	d.table[functionID] = handler
}

// Serve runs the accept loop identically to Dispatcher.Serve.
func (d *SchemaDispatcher) Serve(srv *transport.Server) error {
	var wg sync.WaitGroup
	for {
		ch, err := srv.Accept()
		if err != nil {
			wg.Wait()
			return err
		}
		if ch == nil {
			wg.Wait()
			return nil
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			d.worker(ch)
		}()
	}
}

func (d *SchemaDispatcher) worker(ch *transport.Channel) {
	defer ch.Close()
	for {
		payload, err := ch.Recv()
		if err != nil {
			return
		}

		resp := d.handleRequest(payload)
		if err := ch.Send(resp); err != nil {
			return
		}
	}
}

func (d *SchemaDispatcher) handleRequest(payload []byte) []byte {
	if len(payload) < 16 {
		panic("server: request payload shorter than the fixed header")
	}

	req, err := wire.DecodeRequest(payload)
	if errors.Is(err, wire.ErrBadMagic) {
		return wire.EncodeResponse(req.CallID, wire.InvalidArg, nil)
	} else if err != nil {
		panic(fmt.Sprintf("server: malformed request: %v", err))
	}

	if req.ArgCount != 1 {
		return wire.EncodeResponse(req.CallID, wire.InvalidArg, nil)
	}

	handler, ok := d.table[req.FunctionID]
	if !ok {
		return wire.EncodeResponse(req.CallID, wire.ServerInvalidFunction, nil)
	}

	reqData, err := req.Args().GetBuffer(0)
	if err != nil {
		return wire.EncodeResponse(req.CallID, wire.InvalidArg, nil)
	}

	d.coreMu.Lock()
	respData, err := handler(reqData)
	d.coreMu.Unlock()

	if err != nil {
		obslog.Warn("schema handler error", "function_id", req.FunctionID, "error", err)
		return wire.EncodeResponse(req.CallID, wire.ServerInternalError, nil)
	}
	return wire.EncodeResponse(req.CallID, wire.Ok, respData)
}
