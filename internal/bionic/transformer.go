// Package bionic implements the reading-mode toggle: a per-page-view
// state machine that swaps a region's content for its bionic reading
// rendition and restores the original on demand.
package bionic

import (
	"context"
	"fmt"
)

// Transformer converts markup into its bionic reading form.
type Transformer interface {
	Transform(ctx context.Context, content string, controls Controls) (string, error)
}

// TransformerFunc adapts a function to Transformer.
type TransformerFunc func(ctx context.Context, content string, controls Controls) (string, error)

func (f TransformerFunc) Transform(ctx context.Context, content string, controls Controls) (string, error) {
	return f(ctx, content, controls)
}

// Request is a transformation the adapter must run for a session. The
// ticket identifies it when the result is handed back to Resolve.
type Request struct {
	Ticket   uint64
	Content  string
	Controls Controls
}

// TransformationError reports a failed provider call. StatusCode is zero
// when no HTTP response was received.
type TransformationError struct {
	StatusCode int
	Err        error
}

func (e *TransformationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transformation failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transformation failed: %v", e.Err)
}

func (e *TransformationError) Unwrap() error { return e.Err }
