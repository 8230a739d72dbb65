package api

import (
	"net/http"
	"strconv"

	"github.com/magicyuan876/mineru-tianshu/auth"
	"github.com/magicyuan876/mineru-tianshu/task"
	tianshu "github.com/magicyuan876/mineru-tianshu"
)

func (s *Server) handleQueueStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "queue stats: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())

	filter := tianshu.ListFilter{}
	if !u.Has(auth.TaskViewAll) {
		filter.UserId = u.Id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, err := task.ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown status: "+raw)
			return
		}
		filter.Status = st
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil && n > 0 {
			limit = n
		}
	}

	tasks, err := s.store.List(r.Context(), filter, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list tasks: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}
