package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NewsFeedBlocks/internal/app"
	"github.com/NewsFeedBlocks/internal/infra/metrics"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var blockTemplate = template.Must(template.ParseFS(templateFS, "templates/block.html.tmpl"))

// BlockOpener opens a session for a configured block.
type BlockOpener interface {
	Open(ctx context.Context, name string, query url.Values) (*app.Session, error)
	Blocks() []string
}

// BlockHandler serves news feed blocks as HTML and JSON.
type BlockHandler struct {
	blocks BlockOpener
}

func NewBlockHandler(blocks BlockOpener) *BlockHandler {
	return &BlockHandler{blocks: blocks}
}

// ListBlocks returns the configured block names.
func (h *BlockHandler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"blocks": h.blocks.Blocks()})
}

// RenderBlock renders the block page named in the path on the page named by ?p=.
func (h *BlockHandler) RenderBlock(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	session, ok := h.open(w, r, name, "html")
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := blockTemplate.Execute(w, newPageData(session)); err != nil {
		slog.Error("Failed to render block", "block", name, "error", err)
		metrics.BlockRequests.WithLabelValues(name, "html", "error").Inc()
		return
	}
	metrics.BlockRequests.WithLabelValues(name, "html", "ok").Inc()
}

// BlockState returns the block view as JSON, for clients that render it themselves.
func (h *BlockHandler) BlockState(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	session, ok := h.open(w, r, name, "json")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{
		BlockView: session.View(),
		Links:     pageLinks(session),
	})
	metrics.BlockRequests.WithLabelValues(name, "json", "ok").Inc()
}

func (h *BlockHandler) open(w http.ResponseWriter, r *http.Request, name, format string) (*app.Session, bool) {
	session, err := h.blocks.Open(r.Context(), name, r.URL.Query())
	if errors.Is(err, app.ErrBlockNotFound) {
		// Unknown names stay out of the label set.
		metrics.BlockRequests.WithLabelValues("unknown", format, "not_found").Inc()
		http.Error(w, "block not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		slog.Error("Failed to open block", "block", name, "error", err)
		metrics.BlockRequests.WithLabelValues(name, format, "error").Inc()
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}

	// The response is the finished page; skip the fade.
	session.Renderer().Flush()
	return session, true
}

type stateResponse struct {
	app.BlockView
	Links map[string]string `json:"links,omitempty"`
}

func pageLinks(s *app.Session) map[string]string {
	if s.Empty() {
		return nil
	}
	links := make(map[string]string, s.State().TotalPages)
	for page := 1; page <= s.State().TotalPages; page++ {
		links[strconv.Itoa(page)] = s.URL().Href(page)
	}
	return links
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
