package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"VaultKeeper/internal/auth"
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/metrics"
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/service"
	"VaultKeeper/internal/validation"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	itemService *service.ItemService,
	tokens *auth.TokenService,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.WithSecurityHeaders)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithMetrics(m))
	r.Use(middleware.WithGzip)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	v := validation.New()
	gate := middleware.NewAuth(tokens, m)

	// Handlers
	authHandler := NewAuthHandler(userService, v, m, logger, config)
	itemHandler := NewItemHandler(itemService, v, logger)
	adminHandler := NewAdminHandler(userService, v, logger)

	// Public routes
	r.Get("/api/health", Health)
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(gate.Authenticate)

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", authHandler.Me)

		r.Route("/api/vault", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Post("/", itemHandler.Create)
			r.Post("/search", itemHandler.Search)
			r.With(gate.RequireRole(model.RoleAdmin)).Get("/all", itemHandler.ListAll)
			r.Get("/{id}", itemHandler.Get)
			r.Put("/{id}", itemHandler.Update)
			r.Delete("/{id}", itemHandler.Delete)
		})

		r.Route("/api/users", func(r chi.Router) {
			r.Use(gate.RequireRole(model.RoleAdmin))
			r.Get("/", adminHandler.ListUsers)
			r.Get("/{id}", adminHandler.GetUser)
			r.Put("/{id}", adminHandler.UpdateUser)
			r.Delete("/{id}", adminHandler.DeleteUser)
		})

		r.With(gate.RequireAnyRole(model.RoleAdmin, model.RoleAuditor)).
			Method(http.MethodGet, "/api/metrics", m.Handler())
	})

	return &Handler{Router: r}
}

// Health — проверка живости, без аутентификации.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
