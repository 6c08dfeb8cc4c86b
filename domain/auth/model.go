package auth

import (
	"database/sql"
	"time"
)

// RefreshToken is a stored refresh token row. Only the SHA-256 hash of the
// token is persisted.
type RefreshToken struct {
	ID         int64          `db:"id"`
	UserID     int64          `db:"user_id"`
	TokenHash  string         `db:"token_hash"`
	RememberMe bool           `db:"remember_me"`
	ExpiresAt  time.Time      `db:"expires_at"`
	CreatedAt  time.Time      `db:"created_at"`
	RevokedAt  sql.NullTime   `db:"revoked_at"`
	ReplacedBy sql.NullInt64  `db:"replaced_by"`
	UserAgent  sql.NullString `db:"user_agent"`
	IPAddress  sql.NullString `db:"ip_address"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Token lifetimes
const (
	AccessTokenExpiry            = 15 * time.Minute
	RefreshTokenExpiry           = 7 * 24 * time.Hour
	RefreshTokenExpiryRememberMe = 30 * 24 * time.Hour
	AccessTokenExpirySeconds     = 900
)
