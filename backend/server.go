package backend

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/silenole/stickerbot/backend/handlers"
	"github.com/silenole/stickerbot/backend/middleware"
	"github.com/silenole/stickerbot/backend/utils"
)

// Cloud API deliveries are small; anything larger is not a webhook.
const maxBodySize = 1 << 20

// NewApp builds the fiber application serving the webhook and health routes.
func NewApp(webApp *handlers.WebApp) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "SileNole Stickerbot",
		ErrorHandler:          middleware.CustomErrorHandler,
		BodyLimit:             maxBodySize,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.LoggingMiddleware())

	app.Get("/", handlers.Index(webApp))
	app.Get("/health", handlers.HealthCheck(webApp))
	app.Get("/webhook", handlers.WebhookVerify(webApp))
	app.Post("/webhook", handlers.WebhookReceive(webApp))

	app.Use(func(c *fiber.Ctx) error {
		return utils.SendNotFound(c, "Route not found")
	})

	return app
}
