// Package middleware wraps command handlers with cross-cutting behavior.
package middleware

import (
	"context"
	"io"
)

// HandlerFunc runs one command with its remaining arguments and writes the
// result to w.
type HandlerFunc func(ctx context.Context, args []string, w io.Writer) error

// Middleware decorates a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain applies mws so that the first one is outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
