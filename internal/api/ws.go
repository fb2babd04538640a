// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/pdiddy/wiki-watch/internal/content"
)

var upgrader = websocket.Upgrader{
	// Extension background pages connect from a chrome-extension:// origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS reads background messages from one connection. Each message is
// dispatched in order and answered with an Ack once dispatch returns.
func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tab(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "tab", t.ID, "error", err)
		return
	}
	defer conn.Close()

	for {
		var msg content.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket closed", "tab", t.ID, "error", err)
			}
			return
		}

		h.dispatch(r, t, msg)

		if err := conn.WriteJSON(content.Ack{Ack: true}); err != nil {
			h.logger.Debug("websocket write failed", "tab", t.ID, "error", err)
			return
		}
	}
}
