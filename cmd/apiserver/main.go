// Command apiserver runs the Tianshu HTTP gateway: task submission,
// status/result retrieval, queue administration and engine discovery.
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

	"github.com/magicyuan876/mineru-tianshu/api"
	"github.com/magicyuan876/mineru-tianshu/auth"
	"github.com/magicyuan876/mineru-tianshu/config"
	"github.com/magicyuan876/mineru-tianshu/engine"
	"github.com/magicyuan876/mineru-tianshu/objectstore"
	"github.com/magicyuan876/mineru-tianshu/storage/sqlite"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		log.Error("TIANSHU_JWT_SECRET must be set")
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

	authn := auth.NewJWTAuthenticator([]byte(cfg.JWTSecret))

	var uploader objectstore.Uploader
	if cfg.S3Endpoint != "" {
		s3up, err := objectstore.NewS3Uploader(ctx, objectstore.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyId:     cfg.S3AccessKeyId,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			log.Error("init object store uploader", "err", err)
			os.Exit(1)
		}
		uploader = s3up
	}

	srv := api.NewServer(api.Config{
		Addr:         cfg.APIAddr,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		OutputRoot:   cfg.OutputRoot,
		UploadDir:    cfg.UploadDir,
		StaleTimeout: cfg.StaleTimeout,
	}, store, authn, reg, uploader, log)

	if err := srv.Start(ctx); err != nil {
		log.Error("start api server", "err", err)
		os.Exit(1)
	}
	log.Info("api server listening", "addr", cfg.APIAddr)

	<-ctx.Done()
	log.Info("shutting down api server")
	if err := srv.Stop(30 * time.Second); err != nil {
		log.Error("stop api server", "err", err)
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
