package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkraj/wholemart/internal/hub"
	"go.uber.org/zap"
)

// StreamHandler serves the live notification stream over
// server-sent events
type StreamHandler struct {
	hub    *hub.Hub
	logger *zap.Logger
}

// NewStreamHandler creates new StreamHandler instance
func NewStreamHandler(h *hub.Hub, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{hub: h, logger: logger}
}

// Stream holds the connection open and writes each event of the
// authenticated user as it happens. The connection ends when the
// client goes away or the server shuts down.
// 200 — event stream;
// 401 — user is not authenticated;
// 500 — streaming unsupported.
func (sh *StreamHandler) Stream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		sub := sh.hub.Subscribe(payload.UserID)
		defer sh.hub.Unsubscribe(sub)

		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					sh.logger.Error("can not marshal event", zap.Error(err))
					continue
				}
				if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
