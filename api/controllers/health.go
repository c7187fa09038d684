package controllers

import (
	"net/http"
	"time"

	"github.com/homeboardhq/homeboard-backend/api/responses"
	"github.com/homeboardhq/homeboard-backend/pkg/config"
	"github.com/homeboardhq/homeboard-backend/pkg/db"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
	"github.com/homeboardhq/homeboard-backend/pkg/redis"
)

const readyCheckTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Homeboard-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores and reports per-dependency status.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Homeboard-Env", cfg.App.Env)

		ctx, cancel := contextWithTimeout(r, readyCheckTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["postgres"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.postgres", err)
				}
			} else {
				checks["postgres"] = "ok"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.redis", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
