package middleware

import (
	"context"
	"errors"
	"testing"
)

func echoHandler(ctx context.Context, functionID uint32) ([]byte, error) {
	return []byte("ok"), nil
}

func failHandler(ctx context.Context, functionID uint32) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestLoggingMiddlewarePassesThroughSuccess(t *testing.T) {
	handler := LoggingMiddleware()(echoHandler)

	data, err := handler(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("got %q, want %q", data, "ok")
	}
}

func TestLoggingMiddlewarePassesThroughError(t *testing.T) {
	handler := LoggingMiddleware()(failHandler)

	_, err := handler(context.Background(), 1)
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	// burst=2: first two calls pass, the third is rejected.
	handler := RateLimitMiddleware(1, 2)(echoHandler)

	for i := 0; i < 2; i++ {
		if _, err := handler(context.Background(), 1); err != nil {
			t.Fatalf("call %d should pass, got error: %v", i, err)
		}
	}

	if _, err := handler(context.Background(), 1); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("call 3 should be rate limited, got: %v", err)
	}
}

func TestChainOrdersOuterToInner(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, functionID uint32) ([]byte, error) {
				order = append(order, name+":before")
				data, err := next(ctx, functionID)
				order = append(order, name+":after")
				return data, err
			}
		}
	}

	chained := Chain(mark("A"), mark("B"))(echoHandler)
	if _, err := chained(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A:before", "B:before", "B:after", "A:after"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}
