package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_storefront/internal/store"
)

const (
	// Per identity (user or device), per window, on mutating routes.
	MutationMaxRequests = 60
	MutationWindow      = 1 * time.Minute
)

// MutationRateLimit throttles cart/wishlist mutations with a Redis counter.
// Reads are never limited.
func MutationRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.GetString("user_id")
		if identity == "" {
			identity = c.GetString("device_id")
		}
		if identity == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("rate:mutation:%s", identity)

		count, err := store.Redis.Incr(ctx, key).Result()
		if err != nil {
			// Rate limiting must not take the storefront down with it.
			c.Next()
			return
		}
		if count == 1 {
			store.Redis.Expire(ctx, key, MutationWindow)
		}

		if count > MutationMaxRequests {
			ttl := store.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests, slow down",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
