// Package server implements the two dispatcher variants from spec §4.3/§4.4:
// a typed dispatcher using positional TLV arguments, and a schema dispatcher
// using a single opaque Buffer argument. Both share the same accept loop
// shape and connection worker discipline; they differ only in how a
// request's argument bytes become a handler call.
package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/moodyhunter/virtiod/internal/obslog"
	"github.com/moodyhunter/virtiod/middleware"
	"github.com/moodyhunter/virtiod/transport"
	"github.com/moodyhunter/virtiod/wire"
)

// HandlerFunc is a typed-dispatcher business handler. It reads its
// arguments from args by index and returns the reply payload to place in
// the response's data field.
type HandlerFunc func(args *wire.ArgReader) ([]byte, error)

// FunctionSpec is one function table entry (spec §3 "Function table"):
// a handler plus its declared argument types.
type FunctionSpec struct {
	Handler  HandlerFunc
	ArgTypes []wire.ArgType
}

// Dispatcher is a typed-variant RPC server (spec §4.3). The function table
// is built once via Register calls before Serve and is never mutated again,
// so it is safe to read from every connection's worker goroutine without
// additional locking.
type Dispatcher struct {
	table       map[uint32]FunctionSpec
	middlewares []middleware.Middleware
}

// NewDispatcher creates an empty typed dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{table: make(map[uint32]FunctionSpec)}
}

// Register adds a function to the table. function_id must be unique;
// Register panics on a duplicate registration since that can only be a
// programming error in startup code, never a runtime condition.
func (d *Dispatcher) Register(functionID uint32, argTypes []wire.ArgType, handler HandlerFunc) {
	if _, exists := d.table[functionID]; exists {
		panic(fmt.Sprintf("server: function_id %d already registered", functionID))
	}
	d.table[functionID] = FunctionSpec{Handler: handler, ArgTypes: argTypes}
}

// Use appends middleware to wrap every handler invocation (spec §4.3 step 6
// expansion). Middlewares apply in the order given, outermost first.
func (d *Dispatcher) Use(mw ...middleware.Middleware) {
	d.middlewares = append(d.middlewares, mw...)
}

// Serve runs the accept loop: one goroutine per accepted connection, each
// running the connection's worker loop until the channel errors or EOF.
// Serve returns when srv.Accept returns (nil, nil) on clean shutdown.
func (d *Dispatcher) Serve(srv *transport.Server) error {
	chain := middleware.Chain(d.middlewares...)
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
			d.worker(ch, chain)
		}()
	}
}

// worker implements spec §4.3's per-connection worker loop: it reads,
// dispatches, and writes one request at a time, never fanning a single
// connection's requests out across goroutines — that would let responses
// leave out of order, which spec §5 forbids.
func (d *Dispatcher) worker(ch *transport.Channel, chain middleware.Middleware) {
	defer ch.Close()
	for {
		payload, err := ch.Recv()
		if err != nil {
			return // EOF or I/O error: exit cleanly, per spec §4.1/§5.
		}

		resp := d.handleRequest(payload, chain)
		if err := ch.Send(resp); err != nil {
			return
		}
	}
}

// handleRequest implements the seven numbered steps of spec §4.3's worker
// loop body (step 1, reading the frame, already happened in worker).
func (d *Dispatcher) handleRequest(payload []byte, chain middleware.Middleware) []byte {
	if len(payload) < 16 {
		panic("server: request payload shorter than the fixed header")
	}

	req, err := wire.DecodeRequest(payload)
	if errors.Is(err, wire.ErrBadMagic) {
		return wire.EncodeResponse(req.CallID, wire.InvalidArg, nil)
	} else if err != nil {
		panic(fmt.Sprintf("server: malformed request: %v", err))
	}

	spec, ok := d.table[req.FunctionID]
	if !ok {
		return wire.EncodeResponse(req.CallID, wire.ServerInvalidFunction, nil)
	}

	if req.ArgCount < uint32(len(spec.ArgTypes)) {
		return wire.EncodeResponse(req.CallID, wire.InvalidArg, nil)
	}

	args := req.Args()
	for i, want := range spec.ArgTypes {
		got, err := args.ArgTypeAt(uint32(i))
		if err != nil || got != want {
			return wire.EncodeResponse(req.CallID, wire.InvalidArg, nil)
		}
	}

	handler := chain(func(ctx context.Context, functionID uint32) ([]byte, error) {
		return spec.Handler(args)
	})

	data, err := handler(context.Background(), req.FunctionID)
	if err != nil {
		obslog.Warn("handler error", "function_id", req.FunctionID, "error", err)
		return wire.EncodeResponse(req.CallID, wire.ServerInternalError, nil)
	}
	return wire.EncodeResponse(req.CallID, wire.Ok, data)
}
