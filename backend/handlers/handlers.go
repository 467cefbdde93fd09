package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/silenole/stickerbot/backend/models"
	"github.com/silenole/stickerbot/backend/utils"
	"github.com/silenole/stickerbot/stickerbot/commands"
	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/dedupe"
	"github.com/silenole/stickerbot/stickerbot/whatsapp"
)

// MessageHandler consumes one inbound chat text.
type MessageHandler interface {
	Handle(ctx context.Context, msg commands.Message) bool
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WebApp holds the dependencies shared by the HTTP handlers.
type WebApp struct {
	VerifyToken string
	Messages    MessageHandler
	Dedupe      dedupe.Deduper
	DB          Pinger
	Version     string
	Commit      string
}

// WebhookVerify answers the Cloud API subscription handshake.
func WebhookVerify(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := c.Query("hub.mode")
		token := c.Query("hub.verify_token")

		if mode != config.WebhookModeSubscribe || app.VerifyToken == "" || token != app.VerifyToken {
			slog.Warn("Webhook verification rejected",
				slog.String("type", "http"),
				slog.String("mode", mode),
				slog.String("ip", utils.GetIPAddress(c)))
			return c.SendStatus(fiber.StatusForbidden)
		}

		slog.Info("Webhook verified", slog.String("type", "http"))
		return c.Status(fiber.StatusOK).SendString(c.Query("hub.challenge"))
	}
}

// WebhookReceive acknowledges every delivery with 200 and processes each
// text message in payload order.
func WebhookReceive(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, err := whatsapp.ParseWebhook(c.Body())
		if err != nil {
			slog.Warn("Malformed webhook payload dropped",
				slog.String("type", "wa"),
				slog.Any("error", err))
			return c.SendStatus(fiber.StatusOK)
		}
		if !payload.IsWhatsApp() {
			slog.Debug("Ignoring webhook object",
				slog.String("type", "wa"),
				slog.String("object", payload.Object))
			return c.SendStatus(fiber.StatusOK)
		}

		for _, m := range payload.TextMessages() {
			processMessage(c.UserContext(), app, m)
		}
		return c.SendStatus(fiber.StatusOK)
	}
}

func processMessage(parent context.Context, app *WebApp, m whatsapp.InboundMessage) {
	ctx, cancel := context.WithTimeout(parent, config.MessageHandlingTimeout)
	defer cancel()

	if app.Dedupe != nil && m.ID != "" {
		seen, err := app.Dedupe.Seen(ctx, m.ID)
		if err != nil {
			slog.Warn("Dedupe check failed",
				slog.String("type", "wa"),
				slog.String("message_id", m.ID),
				slog.Any("error", err))
		} else if seen {
			slog.Info("Duplicate delivery skipped",
				slog.String("type", "wa"),
				slog.String("message_id", m.ID))
			return
		}
	}

	app.Messages.Handle(ctx, commands.Message{ID: m.ID, From: m.From, Text: m.Text.Body})
}

// HealthCheck reports database reachability and build info.
func HealthCheck(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := models.NewHealthCheck(app.Version, app.Commit)

		if app.DB == nil {
			health.AddComponent("database", "healthy", "in-memory store")
		} else {
			ctx, cancel := context.WithTimeout(c.UserContext(), config.HealthCheckTimeout)
			defer cancel()
			if err := app.DB.Ping(ctx); err != nil {
				health.AddComponent("database", "unhealthy", err.Error())
			} else {
				health.AddComponent("database", "healthy", "")
			}
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, health)
	}
}

// Index is a plain liveness banner.
func Index(app *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, fiber.Map{"service": "stickerbot", "version": app.Version}, "ok")
	}
}
