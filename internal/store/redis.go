package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// InitRedis connects the device-store backend.
func InitRedis() error {
	redisHost := os.Getenv("REDIS_HOST")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	if redisHost == "" {
		return fmt.Errorf("REDIS_HOST not set")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     redisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if _, err := Redis.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("cannot reach Redis: %w", err)
	}

	log.Println("✅ Redis connected")
	return nil
}

// CloseRedis closes the Redis connection.
func CloseRedis() error {
	if Redis != nil {
		return Redis.Close()
	}
	return nil
}
