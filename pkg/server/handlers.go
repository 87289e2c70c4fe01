package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/viridian-dev/viridian/pkg/host"
)

// maxEventBody bounds the form body of an event POST.
const maxEventBody = 64 << 10

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.renderPage(r.Context())
	if err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

// handleEvent dispatches an event and answers once the resulting render pass
// has committed, so the next GET or websocket frame reflects it.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	vid, err := strconv.Atoi(chi.URLParam(r, "vid"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	event := chi.URLParam(r, "event")

	r.Body = http.MaxBytesReader(w, r.Body, maxEventBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ev := host.Event{Type: event, Value: r.PostForm.Get("value")}

	var invoked int
	var dispatchErr, flushErr error
	if err := s.loop.Do(r.Context(), func() {
		invoked, dispatchErr = s.doc.DispatchByID(vid, ev)
		if dispatchErr == nil && s.eng.Pending() {
			flushErr = s.eng.Flush()
		}
	}); err != nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	switch {
	case dispatchErr != nil:
		http.Error(w, "Not Found", http.StatusNotFound)
	case flushErr != nil:
		s.logger.Error("render after event failed", "vid", vid, "event", event, "error", flushErr)
		http.Error(w, flushErr.Error(), http.StatusInternalServerError)
	case invoked == 0:
		http.Error(w, "No listener", http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
