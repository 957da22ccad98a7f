package viewer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/symburst/internal/tree"
	"github.com/ziadkadry99/symburst/internal/view"
)

// RegisterRoutes mounts the page, the view API and the event WebSocket.
func RegisterRoutes(r chi.Router, s *Session) {
	r.Get("/", ServeIndex)
	r.Route("/api/view", func(r chi.Router) {
		r.Get("/", handleGet(s))
		r.Post("/filter", handleFilter(s))
		r.Post("/click/{id}", handleNode(s.Click))
		r.Post("/hover/{id}", handleNode(s.Hover))
		r.Delete("/hover", handleEvent(s.HoverEnd))
		r.Post("/reset", handleEvent(s.Reset))
		r.Get("/table/{id}", handleTable(s))
		r.Get("/chain/{id}", handleChain(s))
	})
	r.Get("/ws/view", handleWebSocket(s))
}

// filterRequest is the body of POST /api/view/filter.
type filterRequest struct {
	Types []string `json:"types"`
}

func handleGet(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Snapshot())
	}
}

func handleFilter(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		snap, err := s.Filter(req.Types)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleNode(event func(tree.NodeID) (Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := nodeParam(w, r)
		if !ok {
			return
		}
		snap, err := event(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleEvent(event func() (Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := event()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleTable(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := nodeParam(w, r)
		if !ok {
			return
		}
		rows, err := s.Table(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func handleChain(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := nodeParam(w, r)
		if !ok {
			return
		}
		chain, err := s.AncestorChain(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, chain)
	}
}

func nodeParam(w http.ResponseWriter, r *http.Request) (tree.NodeID, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "node id must be an integer"})
		return 0, false
	}
	return tree.NodeID(n), true
}

// statusFor maps controller errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNoData), errors.Is(err, tree.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, view.ErrNodeNotVisible):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
