package rest

import (
	"log/slog"
	"net/http"

	"github.com/prismcrm/prism-backend/internal/config"
	"github.com/prismcrm/prism-backend/internal/transport/middleware"
)

// NewRouter assembles the full HTTP surface: deal CRUD, pipeline metrics,
// the coach chat, and the health probes, all behind the standard middleware
// chain.
func NewRouter(
	logger *slog.Logger,
	deals *DealHandler,
	coach *CoachHandler,
	health *HealthHandler,
	corsCfg config.CORSConfig,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /api/deals", deals.List)
	mux.HandleFunc("POST /api/deals", deals.Create)
	mux.HandleFunc("PUT /api/deals/{id}", deals.Update)
	mux.HandleFunc("DELETE /api/deals/{id}", deals.Delete)
	mux.HandleFunc("GET /api/pipeline/metrics", deals.Metrics)

	mux.HandleFunc("POST /api/coach/chat", coach.Chat)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(corsCfg),
		middleware.Logger(logger),
	)(mux)
}
