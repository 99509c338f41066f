package cron

import (
	"time"

	"bookflow/config"
	"bookflow/middleware"
	"bookflow/services/client"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartMaintenanceWorker runs the periodic housekeeping jobs: pruning
// clients that went idle (which also tears down their timers) and
// resetting the per-IP rate limiter map. Returns the cron so the caller
// can stop it on shutdown.
func StartMaintenanceWorker(registry *client.Registry, logger *zap.Logger) *cron.Cron {
	c := cron.New()

	maxIdle := time.Duration(config.AppConfig.SessionIdleMinutes) * time.Minute
	if maxIdle <= 0 {
		maxIdle = 30 * time.Minute
	}

	c.AddFunc("@every 1m", func() {
		if n := registry.PruneIdle(maxIdle); n > 0 {
			logger.Debug("maintenance prune", zap.Int("sessions", n))
		}
	})

	c.AddFunc("@every 1h", func() {
		middleware.ResetRateLimiters()
	})

	c.Start()
	logger.Info("maintenance worker started")
	return c
}
