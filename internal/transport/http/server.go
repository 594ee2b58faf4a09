package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NewsFeedBlocks/pkg/config"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the block pages, health check and metrics endpoints.
func NewRouter(h *BlockHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "OK"); err != nil {
			slog.Debug("Failed to write health response", "error", err)
		}
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())

	r.HandleFunc("/blocks", h.ListBlocks).Methods(http.MethodGet)
	r.HandleFunc("/blocks/{name}", h.RenderBlock).Methods(http.MethodGet)
	r.HandleFunc("/blocks/{name}/state", h.BlockState).Methods(http.MethodGet)
	return r
}

func NewHTTPServer(cfg *config.Config, h *BlockHandler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
