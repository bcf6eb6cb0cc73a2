package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseDatabaseURL              string `mapstructure:"FIREBASE_DATABASE_URL"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	ClientURL string `mapstructure:"CLIENT_URL"`

	// Optional profile cache. Left empty, the send pipeline reads profiles
	// straight from Firestore on every send.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Optional notification fan-out. Left empty, message-sent events are not
	// published anywhere.
	AMQPURL            string `mapstructure:"AMQP_URL"`
	NotificationsQueue string `mapstructure:"NOTIFICATIONS_QUEUE"`
	SMTPUser           string `mapstructure:"SMTP_USER"`
	SMTPPassword       string `mapstructure:"SMTP_PASSWORD"`
	SMTPSender         string `mapstructure:"SMTP_SENDER"`

	PresenceHeartbeatInterval time.Duration `mapstructure:"PRESENCE_HEARTBEAT_INTERVAL"`
	PresenceOfflineAfter      time.Duration `mapstructure:"PRESENCE_OFFLINE_AFTER"`
}

var appConfig *Config

// LoadConfig loads configuration from the environment using Viper. A local
// .env file is honored when present.
func LoadConfig() (*Config, error) {
	// Best effort; deployed environments have no .env file.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("NOTIFICATIONS_QUEUE", "chat.notifications")
	viper.SetDefault("PRESENCE_HEARTBEAT_INTERVAL", "60s")
	viper.SetDefault("PRESENCE_OFFLINE_AFTER", "150s")

	for _, key := range []string{
		"PORT", "GIN_MODE",
		"FIREBASE_PROJECT_ID", "FIREBASE_DATABASE_URL",
		"GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"CLIENT_URL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"AMQP_URL", "NOTIFICATIONS_QUEUE",
		"SMTP_USER", "SMTP_PASSWORD", "SMTP_SENDER",
		"PRESENCE_HEARTBEAT_INTERVAL", "PRESENCE_OFFLINE_AFTER",
	} {
		viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.FirebaseDatabaseURL == "" {
		return nil, errors.New("FIREBASE_DATABASE_URL is required")
	}
	if cfg.GoogleApplicationCredentials == "" && cfg.FirebaseServiceAccountJSONBase64 == "" {
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	if cfg.ClientURL == "" {
		return nil, errors.New("CLIENT_URL is required")
	}
	if cfg.PresenceOfflineAfter <= cfg.PresenceHeartbeatInterval {
		return nil, errors.New("PRESENCE_OFFLINE_AFTER must be longer than PRESENCE_HEARTBEAT_INTERVAL")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It panics if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
