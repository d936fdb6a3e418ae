// Package api exposes the process's ambient operations surface: liveness
// and Prometheus metrics. The opportunity-serving HTTP API is an external
// collaborator's concern and is deliberately not built here;
// this router only carries what a process needs to be operable.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/api/middleware"
	"github.com/svyatogor45/xvenue-arb/internal/scanner"
)

// Dependencies wires the ops router's collaborators.
type Dependencies struct {
	Scanner *scanner.Scanner
	Logger *zap.Logger
}

// SetupRoutes registers /healthz and /metrics, wrapped in recovery and
// request logging.
func SetupRoutes(deps *Dependencies) *mux.Router {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := mux.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logging(log))

	router.HandleFunc("/healthz", healthHandler(deps)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

type healthResponse struct {
	Status string `json:"status"`
	State string `json:"state,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func healthHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Timestamp: time.Now().UTC()}
		if deps.Scanner != nil {
			resp.State = string(deps.Scanner.State())
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
