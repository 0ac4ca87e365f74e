package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"velora_storefront/internal/models"
)

const deviceHeader = "X-Device-ID"

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_secret"
	}
	return []byte(secret)
}

// userFromBearer parses the Authorization header and returns the user id, or
// "" when no valid session token is present.
func userFromBearer(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("malformed Authorization header")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id missing from claims")
	}
	return userID, nil
}

// Identify resolves the request's session: an optional signed-in user from
// the bearer token plus the mandatory device id. The device id is required
// even when signed in — the checkout cart is keyed by it, so a session
// without one has nowhere safe to put it. Auth state is evaluated here on
// every request, never cached between operations.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := userFromBearer(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			c.Abort()
			return
		}

		deviceID := c.GetHeader(deviceHeader)
		if deviceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header required"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("device_id", deviceID)
		c.Next()
	}
}

// Session builds the explicit per-operation session the cores expect.
func Session(c *gin.Context) models.Session {
	return models.Session{
		UserID:   c.GetString("user_id"),
		DeviceID: c.GetString("device_id"),
	}
}
