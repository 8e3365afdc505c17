package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"marga/config"
)

// ContextCacheClient is the Redis client backing the command context store.
var ContextCacheClient *redis.Client

// InitContextCache initializes the Redis client for command contexts.
func InitContextCache() {
	ContextCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisContextDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ContextCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Context Cache): %v", err)
	}
}

// GetContextCacheClient returns the Redis client for command contexts.
func GetContextCacheClient() *redis.Client {
	if ContextCacheClient == nil {
		InitContextCache()
	}
	return ContextCacheClient
}
