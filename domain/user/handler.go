package user

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"academy-platform/config"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"
	"academy-platform/utils"

	"github.com/labstack/echo/v4"
)

func toResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
	}
	if u.LastLogin.Valid {
		s := u.LastLogin.Time.Format(time.RFC3339)
		resp.LastLogin = &s
	}
	return resp
}

// CreateUserHandler provisions a new admin account.
func CreateUserHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")
	actorID, _ := c.Get("user_id").(int64)
	log = log.WithUserID(actorID)

	req := new(CreateUserRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if err := c.Validate(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			err.Error(),
		))
	}

	var exists bool
	if err := config.DB.Get(&exists, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", req.Email); err != nil {
		log.Error("Failed to check existing email", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if exists {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists,
			"An account with this email already exists.",
		))
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	result, err := config.DB.Exec(`
		INSERT INTO users (email, password, role_id, token_version, created_at, updated_at)
		VALUES (?, ?, ?, 0, NOW(), NOW())
	`, req.Email, hashed, req.RoleID)
	if err != nil {
		log.Error("Failed to insert user", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	id, _ := result.LastInsertId()
	log.Info("Admin account created", logger.Int64("created_user_id", id), logger.Email(req.Email))

	return apperrors.RespondWithCreated(c, map[string]interface{}{
		"id":    id,
		"email": req.Email,
	})
}

// ListUsersHandler lists admin accounts.
func ListUsersHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")

	var users []User
	err := config.DB.Select(&users, `
		SELECT id, email, password, role_id, token_version, last_login, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`)
	if err != nil {
		log.Error("Failed to list users", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": responses,
		"total": len(responses),
	})
}

// ChangePasswordHandler updates the caller's password and bumps the token
// version, invalidating every outstanding access token.
func ChangePasswordHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")
	userID := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	req := new(ChangePasswordRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if err := c.Validate(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			err.Error(),
		))
	}

	var current string
	err := config.DB.Get(&current, "SELECT password FROM users WHERE id = ?", userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeUserNotFound,
				"User not found.",
			))
		}
		log.Error("Failed to fetch user for password change", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if !utils.CheckPasswordHash(req.OldPassword, current) {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials,
			"Current password is incorrect.",
		))
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		log.Error("Failed to hash new password", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	_, err = config.DB.Exec(`
		UPDATE users
		SET password = ?, token_version = token_version + 1, updated_at = NOW()
		WHERE id = ?
	`, hashed, userID)
	if err != nil {
		log.Error("Failed to update password", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Password changed")

	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated. Please login again."})
}

// DeleteUserHandler removes an admin account and its refresh tokens. The
// caller cannot delete their own account.
func DeleteUserHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")
	actorID := c.Get("user_id").(int64)
	log = log.WithUserID(actorID)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid user id.",
		))
	}
	if id == actorID {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"You cannot delete your own account.",
		))
	}

	tx, err := config.DB.Beginx()
	if err != nil {
		log.Error("Failed to start transaction for user deletion", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM refresh_tokens WHERE user_id = ?", id); err != nil {
		log.Error("Failed to delete refresh tokens for user", err, logger.Int64("target_user_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	result, err := tx.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete user", err, logger.Int64("target_user_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeUserNotFound,
			"User not found.",
		))
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit user deletion", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Admin account deleted", logger.Int64("target_user_id", id))

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted."})
}
