package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
)

// logc logs a message with the current call depth attached.
func (e *Evaluator) logc(ctx context.Context, level slog.Level, depth int, msg string, args ...any) {
	if !e.logger.Enabled(ctx, level) {
		return
	}

	// usually the caller is at depth 1
	if _, file, line, ok := runtime.Caller(1); ok {
		args = append([]any{slog.String("exec_pos", fmt.Sprintf("%s:%d", file, line))}, args...)
	}
	args = append([]any{slog.Int("depth", depth)}, args...)
	e.logger.Log(ctx, level, msg, args...)
}
