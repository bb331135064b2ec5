package config

import "github.com/spf13/viper"

// Config holds the service configuration, sourced from the environment.
type Config struct {
	AppPort     string
	DatabaseURI string
	RabbitMQURL string
}

// Load reads configuration from environment variables, applying defaults.
// DATABASE_URI may be left empty to run against the in-memory store;
// RABBITMQ_URL may be left empty to disable event publishing.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URI", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return &Config{
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseURI: viper.GetString("DATABASE_URI"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
}
