package middleware

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/pkg/apperrors"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

// RateLimiterConfig holds the configuration for rate limiting
type RateLimiterConfig struct {
	MaxRequests   int           // Maximum number of requests allowed in the window
	Window        time.Duration // Time window for rate limiting
	BlockDuration time.Duration // Duration to block the IP after exceeding limits
	DB            *sql.DB
}

// RateLimiterMiddleware limits requests per IP using a database table.
// Applied to engagement writes, where a scripted client could inflate
// counters cheaply.
func RateLimiterMiddleware(cfg RateLimiterConfig) echo.MiddlewareFunc {
	log := logger.Get().WithComponent("rate_limiter")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			now := time.Now()

			tx, err := cfg.DB.Begin()
			if err != nil {
				log.Error("Failed to begin rate limit transaction", err)
				return internalError(c, err)
			}
			defer tx.Rollback()

			var blockedUntil sql.NullTime
			var requestCount int
			var firstRequest time.Time
			err = tx.QueryRow(`
				SELECT blocked_until, request_count, first_request_time
				FROM ip_rate_limits WHERE ip_address = ?`, ip).
				Scan(&blockedUntil, &requestCount, &firstRequest)

			switch {
			case errors.Is(err, sql.ErrNoRows):
				if _, err := tx.Exec(`
					INSERT INTO ip_rate_limits (ip_address, request_count, first_request_time, last_request_time)
					VALUES (?, 1, ?, ?)`, ip, now, now); err != nil {
					log.Error("Failed to insert rate limit row", err, logger.RemoteIP(ip))
					return internalError(c, err)
				}

			case err != nil:
				log.Error("Failed to fetch rate limit row", err, logger.RemoteIP(ip))
				return internalError(c, err)

			case blockedUntil.Valid && blockedUntil.Time.After(now):
				tx.Commit()
				return tooMany(c)

			case now.Sub(firstRequest) > cfg.Window:
				// Window expired, start a new one
				if _, err := tx.Exec(`
					UPDATE ip_rate_limits
					SET request_count = 1, first_request_time = ?, last_request_time = ?, blocked_until = NULL
					WHERE ip_address = ?`, now, now, ip); err != nil {
					log.Error("Failed to reset rate limit window", err, logger.RemoteIP(ip))
					return internalError(c, err)
				}

			case requestCount >= cfg.MaxRequests:
				if _, err := tx.Exec(`
					UPDATE ip_rate_limits SET blocked_until = ? WHERE ip_address = ?`,
					now.Add(cfg.BlockDuration), ip); err != nil {
					log.Error("Failed to block IP", err, logger.RemoteIP(ip))
					return internalError(c, err)
				}
				tx.Commit()
				log.Warn("IP blocked for excessive requests", logger.RemoteIP(ip))
				return tooMany(c)

			default:
				if _, err := tx.Exec(`
					UPDATE ip_rate_limits
					SET request_count = request_count + 1, last_request_time = ?
					WHERE ip_address = ?`, now, ip); err != nil {
					log.Error("Failed to bump rate limit counter", err, logger.RemoteIP(ip))
					return internalError(c, err)
				}
			}

			if err := tx.Commit(); err != nil {
				log.Error("Failed to commit rate limit transaction", err)
				return internalError(c, err)
			}

			return next(c)
		}
	}
}

func internalError(c echo.Context, err error) error {
	return apperrors.RespondWithError(c, apperrors.NewInternal(
		apperrors.ErrCodeDatabaseError,
		"Internal server error.",
		err,
	))
}

func tooMany(c echo.Context) error {
	return apperrors.RespondWithError(c, apperrors.NewTooManyRequests(
		apperrors.ErrCodeRateLimitExceeded,
		"Too many requests from this IP, please try again later.",
	))
}
