package http

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/artem13815/tutor/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
	Decks  *handlers.DeckHandler
	AI     *handlers.AIHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	files := v1.Group("/files", authMW)
	files.Post("/upload", h.Decks.Upload)
	files.Get("/list", h.Decks.List)

	ai := v1.Group("/ai", authMW)
	ai.Post("/ask", h.AI.Ask)
	ai.Post("/explain-slide", h.AI.ExplainSlide)

	app.Get("/swagger/*", swagger.HandlerDefault)
}
