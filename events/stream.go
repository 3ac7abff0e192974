package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/logging"
	"github.com/user/unidirectory-go/respond"
)

// KeepAlive is how often an idle stream receives a comment line so proxies keep it open.
var KeepAlive = 25 * time.Second

// Stream godoc
// @Summary Favorite change stream
// @Description Server-Sent Events: favorite.created and favorite.deleted, each carrying the favorite as JSON.
// @Tags favorites
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /favorites/events [get]
func Stream(b *Broadcaster, rs *respond.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			rs.Error(w, r, apperror.NewInternalError("streaming unsupported", nil))
			return
		}
		// Streams outlive the server's write timeout.
		_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

		log := logging.FromContext(r.Context())
		id, ch := b.Subscribe()
		defer b.Unsubscribe(id)
		log.Debug("Event stream opened", logging.Fields{"client_id": id})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		ticker := time.NewTicker(KeepAlive)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				log.Debug("Event stream closed", logging.Fields{"client_id": id})
				return
			case <-ticker.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()
			case e, open := <-ch:
				if !open {
					return
				}
				data, err := json.Marshal(e.Data)
				if err != nil {
					log.Error("Failed to encode event", err, logging.Fields{"type": e.Type})
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)
				flusher.Flush()
			}
		}
	}
}
