// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/wiki-watch/internal/content"
	"github.com/pdiddy/wiki-watch/internal/search"
	"github.com/pdiddy/wiki-watch/internal/watchlist"
)

func (h *handler) listTabs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.List())
}

// openTab registers the request body as a new host page.
func (h *handler) openTab(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPageBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	t, err := h.manager.Open(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Location", "/tabs/"+t.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": t.ID})
}

func (h *handler) closeTab(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Close(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) renderTab(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tab(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := t.Render(&buf); err != nil {
		h.logger.Error("rendering tab", "tab", t.ID, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// postMessage is the HTTP form of the background channel. Like the
// WebSocket it always acknowledges; dispatch errors are only logged.
func (h *handler) postMessage(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tab(w, r)
	if !ok {
		return
	}
	var msg content.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.dispatch(r, t, msg)
	writeJSON(w, http.StatusOK, content.Ack{Ack: true})
}

func (h *handler) dispatch(r *http.Request, t *content.Tab, msg content.Message) {
	if err := t.Dispatch(r.Context(), msg); err != nil && !errors.Is(err, content.ErrStale) {
		h.logger.Warn("dispatch failed", "tab", t.ID, "message", msg.Message, "error", err)
	}
}

// submitSearch handles the injected form. The outcome is rendered into the
// page; the response reports the number of results.
func (h *handler) submitSearch(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tab(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err := t.Submit(r.Context(), r.PostForm.Get("search"))
	switch {
	case errors.Is(err, content.ErrNotInjected):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, content.ErrStale):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, search.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, err)
	case err != nil:
		// The error is already shown in the page.
		writeJSON(w, http.StatusOK, map[string]any{"results": 0, "error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"results": len(t.Items())})
	}
}

func (h *handler) clearResults(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tab(w, r)
	if !ok {
		return
	}
	if err := t.Clear(); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) saveArticle(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tab(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	list, err := t.Save(r.Context(), index)
	switch {
	case errors.Is(err, content.ErrNoItem):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		h.logger.Error("saving article", "tab", t.ID, "index", index, "error", err)
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, list)
	}
}

func (h *handler) getWatchList(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		list, err := h.list.Entries(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	f, err := watchlist.ParseFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := h.list.Export(r.Context(), f, &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
