package handler

import (
	"medqbank/internal/middleware"
	"medqbank/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Catalog    *CatalogHandler
	Qbank      *QbankHandler
	Session    *SessionHandler
	Auth       *AuthHandler
	Health     *HealthHandler
	Validation *middleware.ValidationMiddleware
}

// SetupRoutes mounts the API under /api. Every qbank route accepts an
// optional bearer token; /me and /auth/logout require one.
func SetupRoutes(app *fiber.App, h Handlers, authService service.AuthService) {
	if h.Health != nil {
		app.Get("/health", h.Health.Health)
	}

	api := app.Group("/api")

	api.Get("/chapters", h.Catalog.ListChapters)
	api.Get("/chapters/:slug", h.Validation.ValidateSlug(), h.Catalog.GetChapter)
	api.Get("/modules", h.Catalog.ListModules)

	qbank := api.Group("/qbank", middleware.OptionalAuth(authService))
	qbank.Get("/", h.Qbank.ListBanks)

	sessions := qbank.Group("/sessions/:id", h.Validation.ValidateSessionID())
	sessions.Get("/", h.Session.GetView)
	sessions.Get("/meta", h.Session.GetSession)
	sessions.Get("/questions", h.Session.GetQuestions)
	sessions.Post("/next", h.Session.Next)
	sessions.Post("/prev", h.Session.Prev)
	sessions.Post("/reveal", h.Session.Reveal)
	sessions.Put("/cursor", h.Session.Seek)
	sessions.Post("/answers", h.Session.Answer)

	qbank.Get("/:bank/filters", h.Validation.ValidateBank(), h.Qbank.GetFilters)
	qbank.Post("/:bank/sessions", h.Validation.ValidateBank(), h.Qbank.CreateSession)

	api.Get("/me", middleware.Protected(authService), h.Auth.Me)
	api.Post("/auth/logout", middleware.Protected(authService), h.Auth.Logout)
}
