// Package server exposes box generation over HTTP.
package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/piwi3910/tabbedbox/internal/config"
)

// New builds the fiber app with every route registered.
func New(cfg *config.Config, h *BoxHandler, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimit(),
		AppName:      "tabbedbox",
	})

	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Use(CORS(cfg.CORSOrigins))

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	api := app.Group("/api")
	api.Get("/enums", Enums)
	api.Post("/box", h.Generate)
	api.Post("/box/nest", h.Nest)
	api.Post("/box/gcode", h.GCode)
	api.Post("/box/:format", h.Export)

	return app
}
