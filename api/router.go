package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magicyuan876/mineru-tianshu/auth"
)

// router assembles the full HTTP surface under the /api/v1 prefix.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", s.handleHealth)
		api.Get("/engines", s.handleListEngines)

		api.Group(func(protected chi.Router) {
			protected.Use(s.authenticate)

			protected.With(requirePermission(auth.TaskSubmit)).Post("/tasks/submit", s.handleSubmitTask)
			protected.Get("/tasks/{id}", s.handleGetTask)
			protected.Delete("/tasks/{id}", s.handleCancelTask)

			protected.With(requirePermission(auth.QueueView)).Get("/queue/stats", s.handleQueueStats)
			protected.Get("/queue/tasks", s.handleListTasks)

			protected.With(requirePermission(auth.QueueManage)).Post("/admin/cleanup", s.handleCleanup)
			protected.With(requirePermission(auth.QueueManage)).Post("/admin/reset-stale", s.handleResetStale)
		})
	})

	return r
}
