// Package timeouts provides centralized timeout values for event loop work.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultLoop     = 3 * time.Second
	DefaultShutdown = 10 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	ping     = DefaultPing
	loop     = DefaultLoop
	shutdown = DefaultShutdown
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Loop returns how long a request waits for its turn on the event loop.
func Loop() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return loop
}

// Shutdown returns the budget for draining the loop on exit.
func Shutdown() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return shutdown
}

// Config holds timeout configuration values. Zero fields are left unchanged.
type Config struct {
	Ping     time.Duration
	Loop     time.Duration
	Shutdown time.Duration
}

// Configure sets custom timeout values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Loop > 0 {
		loop = cfg.Loop
	}
	if cfg.Shutdown > 0 {
		shutdown = cfg.Shutdown
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	loop = DefaultLoop
	shutdown = DefaultShutdown
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_LOOP and TIMEOUT_SHUTDOWN.
// It returns how many values were applied.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	configured := 0

	for _, e := range []struct {
		key string
		dst *time.Duration
	}{
		{"TIMEOUT_PING", &ping},
		{"TIMEOUT_LOOP", &loop},
		{"TIMEOUT_SHUTDOWN", &shutdown},
	} {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*e.dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Loop: loop, Shutdown: shutdown}
}

// WithTimeout creates a context with timeout and logs when it expires.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
