package middleware

import (
	"database/sql"
	"strings"

	"academy-platform/config"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

// JWTMiddleware validates the bearer token and loads the user claims into
// the request context. The token_version claim is checked against the
// database so password changes revoke outstanding tokens immediately.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		jwtSecret := viper.GetString("JWT_SECRET")

		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Missing or invalid token.",
			))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if len(strings.Split(tokenString, ".")) != 3 {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Malformed token.",
			))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})

		if err != nil || !token.Valid {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenExpired,
				"Invalid or expired token.",
			))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Invalid token claims.",
			))
		}

		userIDClaim, okUser := claims["user_id"].(float64)
		emailClaim, okEmail := claims["email"].(string)
		roleIDClaim, okRole := claims["role_id"].(float64)
		if !okUser || !okEmail || !okRole {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Invalid token claims.",
			))
		}

		userID := int64(userIDClaim)
		c.Set("user_id", userID)
		c.Set("email", emailClaim)
		c.Set("role_id", int(roleIDClaim))

		if tokenVersionClaim, ok := claims["token_version"]; ok {
			claimVersion := int64(tokenVersionClaim.(float64))
			var dbVersion int64
			err := config.DB.Get(&dbVersion, "SELECT token_version FROM users WHERE id = ?", userID)
			if err != nil {
				if err == sql.ErrNoRows {
					return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
						apperrors.ErrCodeTokenInvalid,
						"User not found.",
					))
				}
				logger.Get().WithComponent("middleware").Error("Failed to check token version", err, logger.UserID(userID))
				return apperrors.RespondWithError(c, apperrors.NewInternal(
					apperrors.ErrCodeDatabaseError,
					"Internal server error.",
					err,
				))
			}
			if claimVersion != dbVersion {
				return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
					apperrors.ErrCodeTokenExpired,
					"Session revoked. Please login again.",
				))
			}
		}

		return next(c)
	}
}
