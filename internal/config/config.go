package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"threatScoringBackend/internal/pkg/debug"
)

// Config holds the engine tunables. Values come from the environment with
// sensible lab defaults; cmd loads a .env file before calling New.
type Config struct {
	// DefaultMaxAttempts caps a brute-force session when the caller does not
	// supply a cap of its own.
	DefaultMaxAttempts int64
	// AttemptCeiling is the hard upper bound applied to every session.
	AttemptCeiling int64
	// BruteForceMaxLength bounds brute-force candidate length when the caller
	// does not set one.
	BruteForceMaxLength int
	Workers             int
	QueueSize           int
	SessionTimeout      time.Duration
	CacheSize           int
	CacheTTL            time.Duration
	MetricsLogPath      string
}

const maxConcurrentSessions = 6

func New() *Config {
	workers := runtime.NumCPU() * 2
	if workers > maxConcurrentSessions {
		workers = maxConcurrentSessions
	}

	cfg := &Config{
		DefaultMaxAttempts:  getInt64("TS_DEFAULT_MAX_ATTEMPTS", 1000),
		AttemptCeiling:      getInt64("TS_ATTEMPT_CEILING", 1_000_000_000),
		BruteForceMaxLength: getInt("TS_BRUTE_MAX_LENGTH", 4),
		Workers:             getInt("TS_WORKERS", workers),
		QueueSize:           getInt("TS_QUEUE_SIZE", 100),
		SessionTimeout:      time.Duration(getInt("TS_SESSION_TIMEOUT_MINUTES", 30)) * time.Minute,
		CacheSize:           getInt("TS_CACHE_SIZE", 256),
		CacheTTL:            time.Duration(getInt("TS_CACHE_TTL_SECONDS", 300)) * time.Second,
		MetricsLogPath:      getString("TS_METRICS_LOG", "threat_metrics.log"),
	}

	debug.Info("Engine config: workers=%d queue=%d ceiling=%d timeout=%s",
		cfg.Workers, cfg.QueueSize, cfg.AttemptCeiling, cfg.SessionTimeout)

	return cfg
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		debug.Warning("Invalid value for %s: %q, using default %d", key, os.Getenv(key), fallback)
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		debug.Warning("Invalid value for %s: %q, using default %d", key, os.Getenv(key), fallback)
	}
	return fallback
}
