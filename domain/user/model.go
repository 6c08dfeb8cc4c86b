package user

import (
	"database/sql"
	"time"
)

// Admin roles. Superadmins manage accounts; editors manage content.
const (
	RoleSuperAdmin = 0
	RoleEditor     = 1
)

type User struct {
	ID           int64        `db:"id" json:"id"`
	Email        string       `db:"email" json:"email"`
	Password     string       `db:"password" json:"-"`
	RoleID       int          `db:"role_id" json:"role_id"`
	TokenVersion int64        `db:"token_version" json:"-"`
	LastLogin    sql.NullTime `db:"last_login" json:"-"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// UserResponse is the API shape for an admin account.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	RoleID    int       `json:"role_id"`
	LastLogin *string   `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RoleID   int    `json:"role_id" validate:"oneof=0 1"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
