package middleware

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cppla/blogstore/utils"
)

// CommandLogger logs the start and outcome of each command under a fresh run id.
func CommandLogger(command string) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args []string, w io.Writer) error {
			log := utils.Logger.With(
				zap.String("run_id", uuid.NewString()),
				zap.String("command", command),
			)
			start := time.Now()
			log.Debug("command started", zap.Int("args", len(args)))

			err := next(ctx, args, w)

			fields := []zap.Field{zap.Duration("latency", time.Since(start))}
			if err != nil {
				log.Info("command failed", append(fields, zap.Error(err))...)
				return err
			}
			log.Info("command finished", fields...)
			return nil
		}
	}
}
