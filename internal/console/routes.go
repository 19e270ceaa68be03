package console

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/voirie/pkg/model"
)

// Router builds the full console router with global middleware.
func (c *Console) Router(logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))

	c.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all console routes on the given router.
func (c *Console) RegisterRoutes(r chi.Router) {
	// Public routes (no auth required).
	r.With(c.OptionalAuthMiddleware).Get("/", c.HandleLanding)
	r.Get("/login", c.HandleLogin)
	r.Post("/login", c.HandleLoginPost)
	r.Get("/logout", c.HandleLogout)

	// Manager routes.
	r.Group(func(r chi.Router) {
		r.Use(c.AuthMiddleware)
		r.Use(c.RequireRole(model.RoleManager))

		r.Get("/dashboard", c.HandleDashboard)

		r.Route("/signalements", func(r chi.Router) {
			r.Get("/", c.HandleSignalementList)
			r.Post("/{id}/validate", c.HandleValidatePost)
		})

		r.Get("/validation", c.HandleValidationQueue)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", c.HandleUserList)
			r.Post("/{id}/unblock", c.HandleUserUnblock)
		})

		r.Get("/sync", c.HandleSync)
		r.Post("/sync", c.HandleSyncPost)
	})
}
