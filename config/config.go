package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	AppBaseURL        string `mapstructure:"APP_BASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisOTPDB    int    `mapstructure:"REDIS_OTP_DB"`
	RedisPrefsDB  int    `mapstructure:"REDIS_PREFS_DB"`

	// Payrexx payment page.
	PayrexxInstance string `mapstructure:"PAYREXX_INSTANCE"`

	// Admin console password (bcrypt hash).
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Demo timings, in seconds. The processing countdown and the tracker
	// auto-confirm are scripted transitions with no real backend signal.
	OTPCooldownSeconds     int `mapstructure:"OTP_COOLDOWN_SECONDS"`
	ProcessingSeconds      int `mapstructure:"PROCESSING_SECONDS"`
	TrackerWindowSeconds   int `mapstructure:"TRACKER_WINDOW_SECONDS"`
	TrackerConfirmSeconds  int `mapstructure:"TRACKER_CONFIRM_SECONDS"`
	SessionIdleMinutes     int `mapstructure:"SESSION_IDLE_MINUTES"`
	SessionTokenHoursValid int `mapstructure:"SESSION_TOKEN_HOURS_VALID"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_OTP_DB", 0)
	viper.SetDefault("REDIS_PREFS_DB", 1)
	viper.SetDefault("PAYREXX_INSTANCE", "bookflow")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("OTP_COOLDOWN_SECONDS", 60)
	viper.SetDefault("PROCESSING_SECONDS", 8)
	viper.SetDefault("TRACKER_WINDOW_SECONDS", 1800)
	viper.SetDefault("TRACKER_CONFIRM_SECONDS", 6)
	viper.SetDefault("SESSION_IDLE_MINUTES", 30)
	viper.SetDefault("SESSION_TOKEN_HOURS_VALID", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
