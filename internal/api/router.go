package api

import (
	"github.com/tessnimetteib/cv-generator-project2/internal/api/handlers"
	"github.com/tessnimetteib/cv-generator-project2/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupRouter(
	ragHandler *handlers.RAGHandler,
	feedbackHandler *handlers.FeedbackHandler,
	ragService *service.RAGService,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"cache":  ragService.CacheStats(c.Context()),
		})
	})

	v1 := app.Group("/api/v1")
	v1.Post("/retrieve", ragHandler.Retrieve)
	v1.Post("/hybrid-search", ragHandler.HybridSearch)
	v1.Post("/validate", ragHandler.Validate)
	v1.Post("/feedback", feedbackHandler.Submit)

	return app
}
