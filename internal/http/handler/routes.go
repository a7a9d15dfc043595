package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"linkmono/internal/http/middleware"
	"linkmono/internal/service"
)

// Deps are the collaborators the HTTP routes are built from.
// Metrics is optional; /metrics is not mounted when it is nil.
type Deps struct {
	DB       *sql.DB
	Profiles service.ProfileService
	Search   service.SearchService
	Metrics  fiber.Handler
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get(middleware.MetricsPath, d.Metrics)
	}

	app.Post("/search", SearchRedirect())

	api := app.Group("/api")
	api.Get("/search", Search(d.Search))

	users := api.Group("/users")
	users.Get("/:username", GetProfile(d.Profiles))
	users.Get("/:username/articles", ListUserArticles(d.Profiles))
	users.Get("/:username/works", ListUserWorks(d.Profiles))
}
