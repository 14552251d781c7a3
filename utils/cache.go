package utils

import (
	"context"
	"log"
	"time"

	"advisorly/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient caches ranked match results.
	CacheClient *redis.Client
	// RoomsCacheClient tracks provisioned session rooms and bridges.
	RoomsCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitRoomsCache initializes the Redis client for the room registry.
func InitRoomsCache() {
	RoomsCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRoomsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RoomsCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Rooms): %v", err)
	}
}

// GetRoomsCacheClient returns the room registry client.
func GetRoomsCacheClient() *redis.Client {
	if RoomsCacheClient == nil {
		InitRoomsCache()
	}
	return RoomsCacheClient
}

// NewReminderQueueRedisClient returns a fresh client on the delivery queue
// DB, used for queue health checks.
func NewReminderQueueRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
}

// InitRedis initializes all Redis clients used by the service.
func InitRedis() {
	InitCache()
	InitRoomsCache()
}
