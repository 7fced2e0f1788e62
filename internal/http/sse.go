package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/hperssn/spinwheel/internal/wheel"
)

// StreamSpinEvents pushes every server-side spin result to the client as a
// server-sent event until the client goes away.
func StreamSpinEvents(hub *wheel.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		events, release := hub.Subscribe()
		defer release()

		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case res, ok := <-events:
				if !ok {
					return
				}

				data, err := json.Marshal(res)
				if err != nil {
					continue
				}
				w.Write([]byte("event: spin\ndata: "))
				w.Write(data)
				w.Write([]byte("\n\n"))

				flusher.Flush()

			case <-r.Context().Done():
				return
			}
		}
	}
}
