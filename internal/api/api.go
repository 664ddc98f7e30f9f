// Package api exposes the gateway's HTTP surface: liveness, a status
// snapshot and the Prometheus scrape endpoint.
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikaPetteriLundgren/templogger/internal/gateway"
)

// NewRouter wires the endpoints and wraps them in an access log written to
// accessLog.
func NewRouter(svc *gateway.Service, accessLog io.Writer) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", handleStatus(svc)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return handlers.LoggingHandler(accessLog, r)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handleStatus(svc *gateway.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(svc.Status())
	}
}
