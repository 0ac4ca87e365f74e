package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"velora_storefront/internal/models"
)

// GenerateJWT mints the storefront's own session token after a successful
// delegated sign-in.
func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"provider": user.Provider,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
