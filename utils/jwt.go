package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// GenerateAccessToken creates a short-lived access token carrying the admin's
// identity, role, and token_version for session revocation.
func GenerateAccessToken(userID int64, email string, roleID int, tokenVersion int64) (string, error) {
	jwtSecret := viper.GetString("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id":       userID,
		"email":         email,
		"role_id":       roleID,
		"token_version": tokenVersion,
		"exp":           time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
