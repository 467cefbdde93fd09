package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/silenole/stickerbot/stickerbot/config"
)

// CommandEvent is one woken chat message routed to a command.
type CommandEvent struct {
	MessageID string
	From      string
	UserName  string
	Text      string
}

// CommandHandler returns the reply text for the sender.
type CommandHandler func(ctx context.Context, e *CommandEvent) (string, error)

type result struct {
	reply string
	err   error
}

// WrapWithLogging wraps a command handler with logging and a deadline.
func WrapWithLogging(name string, timeout time.Duration, h CommandHandler) CommandHandler {
	if timeout <= 0 {
		timeout = config.CommandExecutionTimeout
	}

	return func(ctx context.Context, e *CommandEvent) (string, error) {
		start := time.Now()

		slog.Info("Command started",
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.String("user_name", e.UserName),
			slog.String("message_id", e.MessageID),
		)

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		done := make(chan result, 1)
		go func() {
			reply, err := h(ctx, e)
			done <- result{reply: reply, err: err}
		}()

		select {
		case res := <-done:
			duration := time.Since(start)

			attrs := []any{
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_name", e.UserName),
				slog.Duration("took", duration),
			}

			if res.err != nil {
				slog.Error("Command failed", append(attrs,
					slog.Any("error", res.err),
					slog.String("status", "failed"),
				)...)
			} else if duration > config.SlowCommandThreshold {
				slog.Warn("Command executed slowly", append(attrs,
					slog.String("status", "slow"),
				)...)
			} else {
				slog.Info("Command completed", append(attrs,
					slog.String("status", "success"),
				)...)
			}
			return res.reply, res.err

		case <-ctx.Done():
			go logLateResult(name, e, start, done)
			slog.Error("Command timed out",
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_name", e.UserName),
				slog.String("status", "timeout"),
				slog.Duration("timeout", timeout),
			)
			return "", fmt.Errorf("command %s timed out after %s: %w", name, timeout, ctx.Err())
		}
	}
}


// logLateResult waits for a handler that outlived its deadline and records
// how it ended. A write that still landed can then be matched to the
// failure reply the user already got.
func logLateResult(name string, e *CommandEvent, start time.Time, done <-chan result) {
	res := <-done
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.String("user_name", e.UserName),
		slog.String("message_id", e.MessageID),
		slog.Duration("took", time.Since(start)),
	}
	if res.err != nil {
		slog.Warn("Command finished after timeout", append(attrs,
			slog.Any("error", res.err),
			slog.String("status", "late_failure"),
		)...)
		return
	}
	slog.Warn("Command finished after timeout", append(attrs,
		slog.String("status", "late_success"),
	)...)
}
