package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/handler"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/middleware"
	adminservice "github.com/pr-poehali-dev/site-clone-poehali/internal/services/admin"
	authservice "github.com/pr-poehali-dev/site-clone-poehali/internal/services/auth"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *authservice.Service
	AdminService *adminservice.Service
}

// NewRouter creates the API router: two POST-only action-discriminated
// endpoints plus a health check.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	adminHandler := handler.NewAdminHandler(cfg.AdminService)

	adminAuth := middleware.AdminAuth(cfg.AuthService)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.CORS)

	// Auth endpoint (token travels in the body where required)
	api.HandleFunc("/auth", authHandler.Handle).Methods(http.MethodPost, http.MethodOptions)

	// Admin endpoint (token in X-Auth-Token, admin-only)
	adminRoute := api.PathPrefix("/admin").Subrouter()
	adminRoute.Use(adminAuth)
	adminRoute.HandleFunc("", adminHandler.Handle).Methods(http.MethodPost, http.MethodOptions)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
