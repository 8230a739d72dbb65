// Command worker runs the Tianshu worker process: it binds one runtime
// per configured device slot, leases and processes tasks through the
// engine registry, and runs the periodic stale-recovery/cleanup loop.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/magicyuan876/mineru-tianshu/config"
	"github.com/magicyuan876/mineru-tianshu/engine"
	"github.com/magicyuan876/mineru-tianshu/storage/sqlite"
	"github.com/magicyuan876/mineru-tianshu/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	sqldb, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}
	defer sqldb.Close()
	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := sqlite.InitDB(ctx, db); err != nil {
		log.Error("init schema", "err", err)
		os.Exit(1)
	}
	store := sqlite.NewStore(db)

	reg := engine.NewRegistry()
	registerEngines(reg)
	dispatcher := engine.NewDispatcher(reg, cfg.OutputRoot)

	pool := worker.NewPool(func(device, workerId string) (*worker.Runtime, error) {
		if err := worker.BindDevice(device); err != nil {
			return nil, err
		}
		rt := worker.NewRuntime(store, dispatcher.Handle, worker.RuntimeConfig{
			WorkerId:        workerId,
			PollInterval:    cfg.PollInterval,
			MaxPollInterval: cfg.MaxPollInterval,
			Jitter:          cfg.PollJitter,
		}, log.With("worker_id", workerId))
		return rt, nil
	}, worker.PoolConfig{
		Devices:          cfg.Devices,
		WorkersPerDevice: cfg.WorkersPerDevice,
		InitConcurrency:  4,
		IdPrefix:         "tianshu",
	}, log)

	if err := pool.Start(ctx); err != nil {
		log.Error("start worker pool", "err", err)
		os.Exit(1)
	}

	maintenance := worker.NewMaintenanceWorker(store, worker.MaintenanceConfig{
		Interval:     cfg.MaintenanceInterval,
		StaleTimeout: cfg.StaleTimeout,
		RetentionAge: cfg.RetentionAge,
	}, log)
	if err := maintenance.Start(ctx); err != nil {
		log.Error("start maintenance worker", "err", err)
		os.Exit(1)
	}

	<-ctx.Done()
	log.Info("shutting down worker process")

	if err := maintenance.Stop(30 * time.Second); err != nil {
		log.Error("stop maintenance worker", "err", err)
	}
	if err := pool.Stop(30 * time.Second); err != nil {
		log.Error("stop worker pool", "err", err)
	}
}

func registerEngines(reg *engine.Registry) {
	reg.Register(engine.Pipeline, engine.NewPipelineEngine("python3", "engines/pipeline/run.py"),
		[]string{"pdf", "png", "jpg", "jpeg", "bmp", "tiff", "webp"}, "MinerU pipeline document parser")
	reg.Register(engine.DeepSeekOCR, engine.NewDeepSeekOCREngine("python3", "engines/deepseek_ocr/run.py", "models/deepseek-ocr"),
		[]string{"pdf", "png", "jpg", "jpeg", "bmp", "tiff", "webp"}, "DeepSeek-OCR GPU document parser")
	reg.Register(engine.PaddleOCRVL, engine.NewPaddleOCRVLEngine("python3", "engines/paddleocr_vl/run.py", "models/paddleocr-vl"),
		[]string{"pdf", "png", "jpg", "jpeg", "bmp", "tiff", "webp"}, "PaddleOCR-VL GPU document parser")
	reg.Register(engine.SenseVoice, engine.NewSenseVoiceEngine("python3", "engines/sensevoice/run.py"),
		[]string{"mp3", "wav", "m4a", "flac", "ogg", "aac", "wma", "opus"}, "SenseVoice audio transcription")
	reg.Register(engine.Video, engine.NewVideoEngine("python3", "engines/video/run.py"),
		[]string{"mp4", "avi", "mkv", "mov", "flv", "webm", "m4v", "wmv", "mpeg", "mpg"}, "video keyframe/subtitle extraction")
	reg.Register(engine.Generic, engine.NewGenericEngine("python3", "engines/generic/run.py"),
		[]string{"*"}, "generic document-to-markdown fallback")
}
