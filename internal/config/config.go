// Package config loads application configuration once at process start.
// A local .env file is honored when present; real environment variables
// always win.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the process reads from its environment.
type Config struct {
	Port        string
	Environment string
	MongoURI    string
	MongoDB     string
	CORSOrigins string
	// RabbitMQURL enables event publishing when non-empty.
	RabbitMQURL string
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() *Config {
	// Missing .env is fine; containers inject real env vars instead.
	_ = godotenv.Load()

	viper.SetDefault("APP_PORT", ":5000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "dietbro")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return &Config{
		Port:        viper.GetString("APP_PORT"),
		Environment: viper.GetString("APP_ENV"),
		MongoURI:    viper.GetString("MONGO_URI"),
		MongoDB:     viper.GetString("MONGO_DB"),
		CORSOrigins: viper.GetString("CORS_ORIGINS"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
}

// IsProduction reports whether the deployment-mode flag is set to production.
// Error responses include stack traces only when this is false.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
