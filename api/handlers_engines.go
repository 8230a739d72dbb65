package api

import "net/http"

func (s *Server) handleListEngines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"engines": s.reg.Describe()})
}
