package app

import (
	"net/http"

	authservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/pingpong-bot/app/modules/auth/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter builds the root router. /metrics is mounted only when reg is set. CORS
// headers apply to every API route for the allowed origins.
func newRouter(reg *prometheus.Registry, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authhandlers.CORSMiddleware(allowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}
	return r
}

func requireAdmin(service authservice.Service) func(http.Handler) http.Handler {
	return authhandlers.RequireAdmin(service)
}
