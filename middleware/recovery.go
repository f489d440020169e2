package middleware

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cppla/blogstore/utils"
)

// Recovery turns a panic inside a command into an error and logs the stack.
func Recovery() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args []string, w io.Writer) (err error) {
			defer func() {
				if r := recover(); r != nil {
					utils.Logger.Error("command panicked", zap.Any("panic", r), zap.Stack("stack"))
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(ctx, args, w)
		}
	}
}
