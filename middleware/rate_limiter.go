package middleware

import (
	"database/sql"
	"time"

	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// RateLimiterConfig holds the configuration for per-IP rate limiting.
type RateLimiterConfig struct {
	MaxRequests   int
	Window        time.Duration
	BlockDuration time.Duration
	DB            *sqlx.DB
}

// RateLimiterMiddleware limits requests per IP using the ip_rate_limits
// table, so the limit holds across instances sharing one database.
func RateLimiterMiddleware(cfg RateLimiterConfig) echo.MiddlewareFunc {
	log := logger.Get().WithComponent("rate_limiter")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			now := time.Now()

			tx, err := cfg.DB.Beginx()
			if err != nil {
				log.Error("Failed to begin rate limit transaction", err, logger.RemoteIP(ip))
				return apperrors.RespondWithError(c, apperrors.NewInternal(
					apperrors.ErrCodeDatabaseError,
					"Internal server error.",
					err,
				))
			}
			defer tx.Rollback()

			var blockedUntil sql.NullTime
			err = tx.Get(&blockedUntil, "SELECT blocked_until FROM ip_rate_limits WHERE ip_address = ?", ip)
			if err != nil && err != sql.ErrNoRows {
				log.Error("Failed to fetch rate limit block state", err, logger.RemoteIP(ip))
				return apperrors.RespondWithError(c, apperrors.NewInternal(
					apperrors.ErrCodeDatabaseError,
					"Internal server error.",
					err,
				))
			}

			if blockedUntil.Valid && blockedUntil.Time.After(now) {
				tx.Commit()
				return apperrors.RespondWithError(c, apperrors.NewTooManyRequests(
					apperrors.ErrCodeRateLimitExceeded,
					"Too many requests from this IP, please try again later.",
				))
			}

			type limitRow struct {
				RequestCount     int       `db:"request_count"`
				FirstRequestTime time.Time `db:"first_request_time"`
			}
			var row limitRow
			err = tx.Get(&row, "SELECT request_count, first_request_time FROM ip_rate_limits WHERE ip_address = ?", ip)
			if err != nil && err != sql.ErrNoRows {
				log.Error("Failed to fetch rate limit data", err, logger.RemoteIP(ip))
				return apperrors.RespondWithError(c, apperrors.NewInternal(
					apperrors.ErrCodeDatabaseError,
					"Internal server error.",
					err,
				))
			}

			if err == sql.ErrNoRows {
				_, err = tx.Exec(`
					INSERT INTO ip_rate_limits (ip_address, request_count, first_request_time, last_request_time)
					VALUES (?, 1, ?, ?)
				`, ip, now, now)
				if err != nil {
					log.Error("Failed to insert rate limit row", err, logger.RemoteIP(ip))
					return apperrors.RespondWithError(c, apperrors.NewInternal(
						apperrors.ErrCodeDatabaseError,
						"Internal server error.",
						err,
					))
				}
			} else if now.Sub(row.FirstRequestTime) > cfg.Window {
				_, err = tx.Exec(`
					UPDATE ip_rate_limits
					SET request_count = 1, first_request_time = ?, last_request_time = ?, blocked_until = NULL
					WHERE ip_address = ?
				`, now, now, ip)
				if err != nil {
					log.Error("Failed to reset rate limit window", err, logger.RemoteIP(ip))
					return apperrors.RespondWithError(c, apperrors.NewInternal(
						apperrors.ErrCodeDatabaseError,
						"Internal server error.",
						err,
					))
				}
			} else if row.RequestCount >= cfg.MaxRequests {
				blockedUntilTime := now.Add(cfg.BlockDuration)
				_, err = tx.Exec(`
					UPDATE ip_rate_limits
					SET blocked_until = ?
					WHERE ip_address = ?
				`, blockedUntilTime, ip)
				if err != nil {
					log.Error("Failed to block IP", err, logger.RemoteIP(ip))
					return apperrors.RespondWithError(c, apperrors.NewInternal(
						apperrors.ErrCodeDatabaseError,
						"Internal server error.",
						err,
					))
				}
				tx.Commit()

				log.Warn("IP blocked for exceeding rate limit", logger.RemoteIP(ip))

				return apperrors.RespondWithError(c, apperrors.NewTooManyRequests(
					apperrors.ErrCodeRateLimitExceeded,
					"Too many requests from this IP, please try again later.",
				))
			} else {
				_, err = tx.Exec(`
					UPDATE ip_rate_limits
					SET request_count = request_count + 1, last_request_time = ?
					WHERE ip_address = ?
				`, now, ip)
				if err != nil {
					log.Error("Failed to update rate limit count", err, logger.RemoteIP(ip))
					return apperrors.RespondWithError(c, apperrors.NewInternal(
						apperrors.ErrCodeDatabaseError,
						"Internal server error.",
						err,
					))
				}
			}

			if err := tx.Commit(); err != nil {
				log.Error("Failed to commit rate limit transaction", err, logger.RemoteIP(ip))
				return apperrors.RespondWithError(c, apperrors.NewInternal(
					apperrors.ErrCodeDatabaseError,
					"Internal server error.",
					err,
				))
			}

			return next(c)
		}
	}
}
