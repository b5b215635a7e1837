package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wadjakorntonsri/fanlink/pkg/config"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
	"github.com/wadjakorntonsri/fanlink/pkg/validation"
)

// Services groups what the router dispatches to
type Services struct {
	Profiles  ports.ProfileService
	Templates ports.TemplateService
	Objekts   ports.ObjektService
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, svc Services, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	ph := NewProfileHandler(svc.Profiles, validation.New(), logger)
	th := NewTemplateHandler(svc.Templates, logger)
	oh := NewObjektHandler(svc.Objekts, logger)

	mw := NewMiddleware(cfg, logger)
	authHandler := NewAuthHandler(cfg, logger)

	mux := http.NewServeMux()
	handle := func(m *http.ServeMux, pattern string, h http.HandlerFunc) {
		m.Handle(pattern, instrument(pattern, h))
	}

	// Public Routes
	handle(mux, "GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	handle(mux, "GET /p/{siteID}", ph.GetPublicPage)
	handle(mux, "GET /api/v1/templates", th.List)
	handle(mux, "GET /api/v1/templates/{key}", th.Get)
	handle(mux, "GET /auth/google/login", authHandler.Login)
	handle(mux, "GET /auth/google/callback", authHandler.Callback)
	handle(mux, "GET /auth/logout", authHandler.Logout)

	// Protected Routes
	protectedMux := http.NewServeMux()
	handle(protectedMux, "GET /api/v1/profile", ph.GetDashboard)
	handle(protectedMux, "POST /api/v1/profile", ph.CreateProfile)
	handle(protectedMux, "PUT /api/v1/profile", ph.UpdateProfile)
	handle(protectedMux, "POST /api/v1/profile/items", ph.AddItem)
	handle(protectedMux, "PUT /api/v1/profile/items/order", ph.ReorderItems)
	handle(protectedMux, "PUT /api/v1/profile/items/{id}", ph.UpdateItem)
	handle(protectedMux, "DELETE /api/v1/profile/items/{id}", ph.RemoveItem)
	handle(protectedMux, "GET /api/v1/objekts", oh.Search)

	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return mw.LoggingMiddleware(mux)
}
