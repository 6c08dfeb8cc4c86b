package middleware

import (
	"academy-platform/domain/user"
	"academy-platform/pkg/apperrors"

	"github.com/labstack/echo/v4"
)

// RoleMiddleware restricts a route group to a named role. Role names map to
// the role_id values carried in the JWT.
func RoleMiddleware(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleID, ok := c.Get("role_id").(int)
			if !ok {
				return apperrors.RespondWithError(c, apperrors.NewForbidden(
					apperrors.ErrCodeForbidden,
					"Access denied.",
				))
			}

			var requiredRoleID int
			switch requiredRole {
			case "superadmin":
				requiredRoleID = user.RoleSuperAdmin
			case "editor":
				requiredRoleID = user.RoleEditor
			default:
				return apperrors.RespondWithError(c, apperrors.NewForbidden(
					apperrors.ErrCodeForbidden,
					"Invalid role.",
				))
			}

			// Superadmins pass every role gate
			if roleID != requiredRoleID && roleID != user.RoleSuperAdmin {
				return apperrors.RespondWithError(c, apperrors.NewForbidden(
					apperrors.ErrCodeInsufficientPermission,
					"Access denied.",
				))
			}

			return next(c)
		}
	}
}
