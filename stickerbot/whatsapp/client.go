// Package whatsapp speaks the WhatsApp Cloud API: it parses webhook
// deliveries and sends text replies.
package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/silenole/stickerbot/stickerbot/config"
)

type ClientConfig struct {
	Token         string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	Timeout       time.Duration
}

type Client struct {
	cfg ClientConfig
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultGraphBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = config.DefaultGraphAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.NotificationTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg}
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             TextBody `json:"text"`
}

// APIError is a non-2xx answer from the Graph API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whatsapp api error: %d - %s", e.Status, e.Body)
}

func (c *Client) messagesURL() string {
	return fmt.Sprintf("%s/%s/%s/messages", c.cfg.BaseURL, c.cfg.APIVersion, c.cfg.PhoneNumberID)
}

// SendText delivers body to the given phone number.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	timeout := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return fmt.Errorf("send to %s: %w", to, context.DeadlineExceeded)
	}

	payload, err := json.Marshal(textMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             TextBody{Body: body},
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	start := time.Now()
	agent := fiber.Post(c.messagesURL()).
		Set(fiber.HeaderAuthorization, "Bearer "+c.cfg.Token).
		ContentType(fiber.MIMEApplicationJSON).
		Body(payload).
		Timeout(timeout)

	status, resp, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		slog.Error("WhatsApp request failed",
			slog.String("type", "wa"),
			slog.String("to", to),
			slog.Duration("took", time.Since(start)),
			slog.Any("error", err))
		return fmt.Errorf("send to %s: %w", to, err)
	}

	if status < 200 || status >= 300 {
		return &APIError{Status: status, Body: string(resp)}
	}

	slog.Debug("Message sent",
		slog.String("type", "wa"),
		slog.String("to", to),
		slog.Int("status", status),
		slog.Duration("took", time.Since(start)))
	return nil
}
