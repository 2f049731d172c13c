// Package middleware implements the onion-model middleware chain wrapped
// around typed-dispatcher handler invocation (spec §4.3 step 6).
//
// Onion model execution order:
//
//	Chain(A, B, C)(handler)  →  A(B(C(handler)))
//
//	Request:   A.before → B.before → C.before → handler
//	Response:  handler → C.after → B.after → A.after
//
// A dispatcher with no middleware configured behaves exactly per spec §4.3 —
// middleware is an optional layer around step 6 of the worker loop, not a
// replacement for it.
package middleware

import "context"

// HandlerFunc invokes the registered handler for one request. functionID
// identifies which handler is being called, for logging/accounting
// purposes; the arguments themselves are already closed over by whatever
// the dispatcher passed in as the innermost handler.
type HandlerFunc func(ctx context.Context, functionID uint32) ([]byte, error)

// Middleware takes a handler and returns a new handler that wraps it.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes multiple middlewares into one, with the first middleware
// in the list as the outermost layer (executed first on request, last on
// response).
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
