package middleware

import (
	"net/http"
	"strings"

	"github.com/Rasaku-Space/be-culinary-platform/pkg/apperrors"
	"github.com/Rasaku-Space/be-culinary-platform/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

// JWTMiddleware validates the bearer token and extracts identity claims.
// Tokens are minted by the platform's identity service; this service only
// verifies them.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, appErr := parseBearer(c)
		if appErr != nil {
			return apperrors.RespondWithError(c, appErr)
		}
		setIdentity(c, claims)
		return next(c)
	}
}

// OptionalJWTMiddleware extracts identity when a token is present and
// lets guests through untouched. A malformed token is still rejected so
// a broken client notices.
func OptionalJWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}
		claims, appErr := parseBearer(c)
		if appErr != nil {
			return apperrors.RespondWithError(c, appErr)
		}
		setIdentity(c, claims)
		return next(c)
	}
}

func parseBearer(c echo.Context) (jwt.MapClaims, *apperrors.AppError) {
	jwtSecret := viper.GetString("JWT_SECRET")

	authHeader := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, apperrors.NewUnauthorized(
			apperrors.ErrCodeSignInRequired,
			"Sign in to continue.",
		)
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if len(strings.Split(tokenString, ".")) != 3 {
		return nil, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenMalformed,
			"Malformed token.",
		)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid,
			"Invalid or expired token.",
		)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid,
			"Invalid token claims.",
		)
	}
	return claims, nil
}

func setIdentity(c echo.Context, claims jwt.MapClaims) {
	if v, ok := claims["user_id"].(float64); ok {
		c.Set("user_id", int64(v))
		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithUserIDContext(req.Context(), int64(v))))
	}
	if v, ok := claims["email"].(string); ok {
		c.Set("email", v)
	}
	if v, ok := claims["role"].(string); ok {
		c.Set("role", v)
	}
	if v, ok := claims["display_name"].(string); ok {
		c.Set("display_name", v)
	}
}
