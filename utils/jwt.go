package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// GenerateToken signs an identity token compatible with what the identity
// service issues. Used by the seeder and tests; the marketplace itself
// never mints tokens for real users.
func GenerateToken(userID int64, email, displayName, role string) (string, error) {
	jwtSecret := viper.GetString("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id":      userID,
		"email":        email,
		"display_name": displayName,
		"role":         role,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
