package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/namelens/mcname/internal/observability"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	s.router.Get("/health", healthHandler)
	s.router.Get("/version", versionHandler)
	s.router.Method(http.MethodGet, "/metrics", observability.MetricsHandler(s.registry))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
