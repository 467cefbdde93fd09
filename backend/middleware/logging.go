package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/silenole/stickerbot/backend/utils"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's if present.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("request_id", id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// LoggingMiddleware logs HTTP requests with a level derived from the status.
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				statusCode = fe.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}

		logLevel := slog.LevelInfo
		if statusCode >= 400 && statusCode < 500 {
			logLevel = slog.LevelWarn
		} else if statusCode >= 500 {
			logLevel = slog.LevelError
		}

		attrs := []any{
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("code", statusCode),
			slog.Duration("took", duration),
			slog.String("ip", utils.GetIPAddress(c)),
			slog.Int("size", len(c.Response().Body())),
		}
		if id, ok := c.Locals("request_id").(string); ok {
			attrs = append(attrs, slog.String("request_id", id))
		}
		if ua := utils.GetUserAgent(c); ua != "" {
			attrs = append(attrs, slog.String("user_agent", ua))
		}

		message := "HTTP request processed"
		if err != nil {
			message = "HTTP request failed"
			attrs = append(attrs, slog.Any("error", err))
		}

		slog.Log(c.Context(), logLevel, message, attrs...)
		return err
	}
}
