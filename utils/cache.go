// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"bookflow/config"

	"github.com/go-redis/redis/v8"
)

var (
	// OTPCacheClient is the dedicated client for one-time passcodes.
	OTPCacheClient *redis.Client
	// PrefsCacheClient is the dedicated client for persisted UI preferences.
	PrefsCacheClient *redis.Client
)

// InitOTPCache initializes the Redis client used for OTP codes and resend cooldowns.
func InitOTPCache() {
	OTPCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOTPDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := OTPCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (OTP): %v", err)
	}
}

// GetOTPCacheClient returns the OTP cache client.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		InitOTPCache()
	}
	return OTPCacheClient
}

// InitPrefsCache initializes the Redis client for persisted preferences.
// The sidebar-collapsed flag is the only value that survives a reload;
// all session and booking state is ephemeral.
func InitPrefsCache() {
	PrefsCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPrefsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := PrefsCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Prefs): %v", err)
	}
}

// GetPrefsCacheClient returns the preferences cache client.
func GetPrefsCacheClient() *redis.Client {
	if PrefsCacheClient == nil {
		InitPrefsCache()
	}
	return PrefsCacheClient
}
