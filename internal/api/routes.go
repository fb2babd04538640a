// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes tabs over HTTP. The background process sends its
// commands through the WebSocket or the messages endpoint; the injected
// UI's events (submit, clear, save) arrive as form posts.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/wiki-watch/internal/content"
	"github.com/pdiddy/wiki-watch/internal/watchlist"
)

// maxPageBytes bounds the host page markup accepted when opening a tab.
const maxPageBytes = 4 << 20

// NewRouter wires the routes for manager and list. A nil logger discards
// output.
func NewRouter(manager *content.Manager, list *watchlist.WatchList, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{manager: manager, list: list, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: slog.NewLogLogger(logger.Handler(), slog.LevelDebug), NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/tabs/{id}", h.renderTab)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tabs", h.listTabs)
		r.Post("/tabs", h.openTab)
		r.Delete("/tabs/{id}", h.closeTab)

		r.Get("/tabs/{id}/ws", h.handleWS)
		r.Post("/tabs/{id}/messages", h.postMessage)

		r.Post("/tabs/{id}/search", h.submitSearch)
		r.Post("/tabs/{id}/clear", h.clearResults)
		r.Post("/tabs/{id}/save/{index}", h.saveArticle)

		r.Get("/watchlist", h.getWatchList)
	})

	return r
}

type handler struct {
	manager *content.Manager
	list    *watchlist.WatchList
	logger  *slog.Logger
}

// tab resolves the {id} URL parameter, writing 404 when it is unknown.
func (h *handler) tab(w http.ResponseWriter, r *http.Request) (*content.Tab, bool) {
	t, ok := h.manager.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, content.ErrNotFound)
		return nil, false
	}
	return t, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
