package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	"github.com/magicyuan876/mineru-tianshu/auth"
	"github.com/magicyuan876/mineru-tianshu/engine"
	"github.com/magicyuan876/mineru-tianshu/internal"
	"github.com/magicyuan876/mineru-tianshu/objectstore"
)

// Config configures a Server.
type Config struct {
	Addr               string
	CORSOrigins        []string
	OutputRoot         string
	UploadDir          string
	ImageUploadWorkers int
	StaleTimeout       time.Duration
}

// Server is the Tianshu REST gateway. It has the same strict Start-once,
// graceful-Stop lifecycle as worker.Runtime and worker.MaintenanceWorker.
type Server struct {
	lc     internal.Lifecycle
	cfg    Config
	store  tianshu.Store
	authn  auth.Authenticator
	reg    *engine.Registry
	upload objectstore.Uploader
	log    *slog.Logger

	images *internal.WorkerPool[imageUploadJob]
	http   *http.Server
}

// NewServer builds a Server. uploader may be nil, in which case result
// image rewriting is disabled and images are served as local paths.
func NewServer(cfg Config, store tianshu.Store, authn auth.Authenticator, reg *engine.Registry, uploader objectstore.Uploader, log *slog.Logger) *Server {
	if cfg.ImageUploadWorkers < 1 {
		cfg.ImageUploadWorkers = 4
	}
	return &Server{
		cfg:    cfg,
		store:  store,
		authn:  authn,
		reg:    reg,
		upload: uploader,
		log:    log,
	}
}

// Start begins serving HTTP requests in the background. Start returns
// internal.ErrDoubleStarted if already started.
func (s *Server) Start(ctx context.Context) error {
	if err := s.lc.TryStart(); err != nil {
		return err
	}

	if s.upload != nil {
		s.images = internal.NewWorkerPool[imageUploadJob](s.cfg.ImageUploadWorkers, 64, s.log)
		s.images.Start(ctx, s.handleImageUpload)
	}

	s.http = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router(),
	}
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("api server stopped unexpectedly", "err", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server and the image upload pool,
// allotting timeout to the whole sequence.
func (s *Server) Stop(timeout time.Duration) error {
	return s.lc.TryStop(timeout, func() internal.DoneChan {
		done := make(internal.DoneChan)
		go func() {
			defer close(done)
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := s.http.Shutdown(ctx); err != nil {
				s.log.Error("http shutdown error", "err", err)
			}
			if s.images != nil {
				<-s.images.Stop()
			}
		}()
		return done
	})
}
