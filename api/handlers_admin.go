package api

import (
	"net/http"
	"strconv"
	"time"
)

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = n
	}

	deleted, err := s.store.CleanupOld(r.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cleanup: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func (s *Server) handleResetStale(w http.ResponseWriter, r *http.Request) {
	timeout := s.cfg.StaleTimeout
	if timeout <= 0 {
		timeout = time.Hour
	}
	reset, err := s.store.ResetStale(r.Context(), timeout)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reset stale: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": reset})
}
