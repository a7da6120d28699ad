package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Port        string
	Environment string

	ConversationsEndpoint       string
	ConversationsAPIKey         string
	ConversationsProjectName    string
	ConversationsDeploymentName string
	ConversationsAPIVersion     string
	ConversationsLanguage       string
	ConversationsTimeout        time.Duration
	ConversationsRPS            float64

	LogLevel  string
	LogFormat string

	APIKey        string
	AdminUsername string
	AdminPassword string
}

// LoadConfig loads configuration from environment variables, falling back to
// an optional config.yaml in the working directory or ./configs.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),

		ConversationsEndpoint:       v.GetString("LS_CONVERSATIONS_ENDPOINT"),
		ConversationsAPIKey:         v.GetString("LS_CONVERSATIONS_KEY"),
		ConversationsProjectName:    v.GetString("LS_CONVERSATIONS_PROJECT"),
		ConversationsDeploymentName: v.GetString("LS_CONVERSATIONS_DEPLOYMENT"),
		ConversationsAPIVersion:     v.GetString("LS_CONVERSATIONS_API_VERSION"),
		ConversationsLanguage:       v.GetString("LS_CONVERSATIONS_LANGUAGE"),
		ConversationsTimeout:        v.GetDuration("LS_CONVERSATIONS_TIMEOUT"),
		ConversationsRPS:            v.GetFloat64("LS_CONVERSATIONS_RPS"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		APIKey:        v.GetString("CLOCK_API_KEY"),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")

	v.SetDefault("LS_CONVERSATIONS_ENDPOINT", "")
	v.SetDefault("LS_CONVERSATIONS_KEY", "")
	v.SetDefault("LS_CONVERSATIONS_PROJECT", "Clock")
	v.SetDefault("LS_CONVERSATIONS_DEPLOYMENT", "production")
	v.SetDefault("LS_CONVERSATIONS_API_VERSION", "2023-04-01")
	v.SetDefault("LS_CONVERSATIONS_LANGUAGE", "en")
	v.SetDefault("LS_CONVERSATIONS_TIMEOUT", "30s")
	v.SetDefault("LS_CONVERSATIONS_RPS", 5)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("CLOCK_API_KEY", "")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
