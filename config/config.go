// Package config loads Tianshu's runtime configuration from environment
// variables.
//
// No third-party configuration library is used here: none of the full
// (non-manifest-only) repos in the example pack demonstrate one in real
// code, so this package follows plain os.Getenv, the same ambient
// approach the teacher's own repo uses for the handful of runtime knobs
// it exposes (see DESIGN.md for the fuller justification).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every environment-derived runtime setting shared by the
// apiserver and worker binaries.
type Config struct {
	// DatabasePath is the SQLite file path (or a DSN understood by
	// modernc.org/sqlite, e.g. "file::memory:?...").
	DatabasePath string

	// OutputRoot is the filesystem root under which engines write result
	// directories, one subtree per task id. Read from TIANSHU_OUTPUT_ROOT,
	// falling back to OUTPUT_PATH.
	OutputRoot string

	// UploadDir is scratch storage for inbound multipart uploads before a
	// task is created.
	UploadDir string

	// APIAddr is the listen address for the API gateway. Read from
	// TIANSHU_API_ADDR, falling back to ":" plus API_PORT (default 8000).
	APIAddr string

	// JWTSecret verifies bearer tokens (auth.JWTAuthenticator).
	JWTSecret string

	// CORSAllowedOrigins is a comma-separated list of origins the API
	// gateway's CORS middleware allows.
	CORSAllowedOrigins []string

	// PollInterval is the base worker poll interval (worker.RuntimeConfig).
	PollInterval time.Duration
	// MaxPollInterval caps jittered poll backoff.
	MaxPollInterval time.Duration
	// PollJitter is the randomization factor applied to the poll interval.
	PollJitter float64

	// StaleTimeout is how long a task may sit in Processing before
	// Maintainer.ResetStale reclaims it.
	StaleTimeout time.Duration
	// RetentionAge is how long a terminal task is kept before
	// Maintainer.CleanupOld deletes its row.
	RetentionAge time.Duration
	// MaintenanceInterval is how often the maintenance loop runs.
	MaintenanceInterval time.Duration

	// Devices lists the devices a worker process should bind to, e.g.
	// "cuda:0,cuda:1", or "cpu" / "auto".
	Devices []string
	// WorkersPerDevice is how many worker slots share each device.
	WorkersPerDevice int

	// S3Endpoint, S3Region, S3Bucket, S3AccessKeyId and S3SecretAccessKey
	// configure the optional object-store-backed image rewrite feature.
	// S3Endpoint empty disables the feature.
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyId     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

// Load reads Config from the process environment, applying the defaults
// documented per field below when a variable is unset.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath:        getEnv("TIANSHU_DB_PATH", "tianshu.db"),
		OutputRoot:          getEnv("TIANSHU_OUTPUT_ROOT", getEnv("OUTPUT_PATH", "./output")),
		UploadDir:           getEnv("TIANSHU_UPLOAD_DIR", "./uploads"),
		APIAddr:             getEnv("TIANSHU_API_ADDR", ":"+getEnv("API_PORT", "8000")),
		JWTSecret:           getEnv("TIANSHU_JWT_SECRET", ""),
		CORSAllowedOrigins:  splitCSV(getEnv("TIANSHU_CORS_ORIGINS", "*")),
		WorkersPerDevice:    1,
		Devices:             splitCSV(getEnv("TIANSHU_DEVICES", "cpu")),
		S3Endpoint:          getEnv("TIANSHU_S3_ENDPOINT", ""),
		S3Region:            getEnv("TIANSHU_S3_REGION", "us-east-1"),
		S3Bucket:            getEnv("TIANSHU_S3_BUCKET", ""),
		S3AccessKeyId:       getEnv("TIANSHU_S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:   getEnv("TIANSHU_S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:     getEnv("TIANSHU_S3_PUBLIC_BASE_URL", ""),
	}

	var err error
	if cfg.PollInterval, err = getDuration("TIANSHU_POLL_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxPollInterval, err = getDuration("TIANSHU_MAX_POLL_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.PollJitter, err = getFloat("TIANSHU_POLL_JITTER", 0.2); err != nil {
		return nil, err
	}
	if cfg.StaleTimeout, err = getDuration("TIANSHU_STALE_TIMEOUT", 60*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RetentionAge, err = getDuration("TIANSHU_RETENTION_AGE", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.MaintenanceInterval, err = getDuration("TIANSHU_MAINTENANCE_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.WorkersPerDevice, err = getInt("TIANSHU_WORKERS_PER_DEVICE", 1); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	return d, nil
}

func getFloat(key string, def float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	return f, nil
}

func getInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	return i, nil
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	var ret []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			if i > start {
				ret = append(ret, v[start:i])
			}
			start = i + 1
		}
	}
	return ret
}
