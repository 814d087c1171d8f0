// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"mindhaven/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// OTPCacheClient holds short-lived verification codes.
	OTPCacheClient *redis.Client
	// PubSubClient carries live room-message fanout.
	PubSubClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func mustPing(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitRedis initializes all Redis clients and verifies connectivity.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	mustPing(CacheClient, "Cache")
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	mustPing(AuthCacheClient, "Auth Cache")
	OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	mustPing(OTPCacheClient, "OTP Cache")
	PubSubClient = newRedisClient(config.AppConfig.RedisPubSubDB)
	mustPing(PubSubClient, "PubSub")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
		mustPing(CacheClient, "Cache")
	}
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
		mustPing(AuthCacheClient, "Auth Cache")
	}
	return AuthCacheClient
}

// GetOTPCacheClient returns the Redis client for verification codes.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
		mustPing(OTPCacheClient, "OTP Cache")
	}
	return OTPCacheClient
}

// GetPubSubClient returns the Redis client carrying room-message fanout.
func GetPubSubClient() *redis.Client {
	if PubSubClient == nil {
		PubSubClient = newRedisClient(config.AppConfig.RedisPubSubDB)
		mustPing(PubSubClient, "PubSub")
	}
	return PubSubClient
}
