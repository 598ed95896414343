package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"digital.vasic.trainer/pkg/logging"
	"digital.vasic.trainer/pkg/scenario"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(
	w http.ResponseWriter, status int, body any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to encode response",
			logging.ErrorField(err),
		)
	}
}

func (s *Server) respondError(
	w http.ResponseWriter, err error,
) {
	status := http.StatusInternalServerError
	if errors.Is(err, scenario.ErrNotFound) {
		status = http.StatusNotFound
	}
	s.respondJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(
	w http.ResponseWriter, _ *http.Request,
) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (s *Server) handleListScenarios(
	w http.ResponseWriter, _ *http.Request,
) {
	s.respondJSON(w, http.StatusOK, s.engine.States())
}

func (s *Server) handleGetScenario(
	w http.ResponseWriter, r *http.Request,
) {
	key := scenario.Key(chi.URLParam(r, "key"))
	state, err := s.engine.State(key)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetHints(
	w http.ResponseWriter, r *http.Request,
) {
	key := scenario.Key(chi.URLParam(r, "key"))
	hints, err := s.engine.Hints(key)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"key":   key,
		"hints": hints,
	})
}

func (s *Server) handleDashboard(
	w http.ResponseWriter, _ *http.Request,
) {
	s.respondJSON(w, http.StatusOK, s.dashboard.Snapshot())
}
