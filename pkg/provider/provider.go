package provider

import "context"

// Completer performs a single, non-streaming chat completion.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Completer interface {
	Complete(ctx context.Context, req *Request) (*Result, error)
}

// CompleterFunc is an adapter that allows using an ordinary function as a
// Completer.
type CompleterFunc func(ctx context.Context, req *Request) (*Result, error)

// Complete calls f(ctx, req).
func (f CompleterFunc) Complete(ctx context.Context, req *Request) (*Result, error) {
	return f(ctx, req)
}
