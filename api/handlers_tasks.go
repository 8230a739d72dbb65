package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/magicyuan876/mineru-tianshu/auth"
	"github.com/magicyuan876/mineru-tianshu/task"
)

func (s *Server) handleSubmitTask(w http.ResponseWriter, r *http.Request) {
	sub, err := s.receiveUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sub.UserId = userFromContext(r.Context()).Id

	id, err := s.store.Create(r.Context(), sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "submit task: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"task_id": id,
		"status":  task.Pending.String(),
	})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get task: "+err.Error())
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if !canView(r, t.UserId) {
		writeError(w, http.StatusForbidden, "not permitted to view this task")
		return
	}

	resp := map[string]any{
		"task_id":       t.Id,
		"status":        t.Status.String(),
		"file_name":     t.FileName,
		"backend":       t.Backend,
		"priority":      t.Priority,
		"retry_count":   t.RetryCount,
		"error_message": t.ErrorMessage,
		"created_at":    t.CreatedAt,
	}

	if t.Status == task.Completed && t.ResultPath != "" {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "markdown"
		}
		if format != "markdown" && format != "json" && format != "both" {
			writeError(w, http.StatusBadRequest, "unknown format: "+format)
			return
		}
		content, err := resolveTaskContent(t.ResultPath, format)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "resolve result: "+err.Error())
			return
		}
		if content.Markdown != "" && r.URL.Query().Get("upload_images") == "true" {
			content.Markdown = s.rewriteImages(r.Context(), t.Id.String(), content.Markdown, filepath.Dir(content.MarkdownAt))
		}
		if content.Markdown != "" {
			resp["content"] = content.Markdown
		}
		if content.JSON != nil {
			resp["json_content"] = content.JSON
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get task: "+err.Error())
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if !canDelete(r, t.UserId) {
		writeError(w, http.StatusForbidden, "not permitted to cancel this task")
		return
	}

	ok2, err := s.store.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cancel task: "+err.Error())
		return
	}
	if !ok2 {
		writeError(w, http.StatusBadRequest, "task is not pending")
		return
	}
	if rmErr := os.Remove(t.FilePath); rmErr != nil && !os.IsNotExist(rmErr) {
		s.log.Warn("cannot remove inbound file", "id", id, "path", t.FilePath, "err", rmErr)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"task_id": id,
		"status":  task.Cancelled.String(),
	})
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed task id")
		return uuid.UUID{}, false
	}
	return id, true
}

func canView(r *http.Request, ownerId string) bool {
	u := userFromContext(r.Context())
	return u.Has(auth.TaskViewAll) || (u != nil && u.Id == ownerId)
}

func canDelete(r *http.Request, ownerId string) bool {
	u := userFromContext(r.Context())
	return u.Has(auth.TaskDeleteAll) || (u != nil && u.Id == ownerId)
}
