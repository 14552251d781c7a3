package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisRoomsDB         int    `mapstructure:"REDIS_ROOMS_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	StripeKey string `mapstructure:"STRIPE_KEY"`
	Currency  string `mapstructure:"CURRENCY"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Provider webhooks the delivery worker posts queued email/SMS to.
	EmailProviderURL string `mapstructure:"EMAIL_PROVIDER_URL"`
	SMSProviderURL   string `mapstructure:"SMS_PROVIDER_URL"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// External call deadlines, in seconds. Financial calls (capture,
	// adjustment, refund) abort their transition on timeout; best-effort
	// calls (notification, provisioning report) are logged and skipped.
	FinancialCallTimeoutSec  int `mapstructure:"FINANCIAL_CALL_TIMEOUT_SEC"`
	BestEffortCallTimeoutSec int `mapstructure:"BEST_EFFORT_CALL_TIMEOUT_SEC"`
}

// FirebaseServiceAccountKeyPath locates the FCM service account credentials.
var FirebaseServiceAccountKeyPath = "config/firebase-service-account.json"

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
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "advisorly")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_ROOMS_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("CURRENCY", "usd")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("FINANCIAL_CALL_TIMEOUT_SEC", 15)
	viper.SetDefault("BEST_EFFORT_CALL_TIMEOUT_SEC", 10)

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

// FinancialCallTimeout is the deadline applied to payment captures,
// adjustments and refunds.
func FinancialCallTimeout() time.Duration {
	return time.Duration(AppConfig.FinancialCallTimeoutSec) * time.Second
}

// BestEffortCallTimeout is the deadline applied to notifications,
// provisioning reports and other non-financial collaborator calls.
func BestEffortCallTimeout() time.Duration {
	return time.Duration(AppConfig.BestEffortCallTimeoutSec) * time.Second
}
