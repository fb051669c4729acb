package middleware

import (
	"github.com/Rasaku-Space/be-culinary-platform/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// RoleMiddleware restricts a route to one role. Must run after
// JWTMiddleware has set the role claim.
func RoleMiddleware(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != requiredRole {
				return apperrors.RespondWithError(c, apperrors.NewForbidden(
					apperrors.ErrCodeForbidden,
					"Access denied.",
				))
			}
			return next(c)
		}
	}
}
