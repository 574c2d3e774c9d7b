package utils

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	AppPort            string `mapstructure:"APP_PORT"`
	Env                string `mapstructure:"ENV"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	MongoURI           string `mapstructure:"MONGO_URI"`
	MongoDatabase      string `mapstructure:"MONGO_DATABASE"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisReservationDB int    `mapstructure:"REDIS_RESERVATION_DB"`
	ReservationTTLSecs int    `mapstructure:"RESERVATION_TTL_SECS"`
	MaxRequestsPerMin  int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

// Global variable to store configuration
var AppConfig Config

// LoadConfig initializes Viper to load config values from env, file, or defaults
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Read environment variables
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "fieldline")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_RESERVATION_DB", 1)
	viper.SetDefault("RESERVATION_TTL_SECS", 120)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	// Read configuration file if available
	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	// Unmarshal into AppConfig struct
	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// GetEnv returns the application environment
func GetEnv() string {
	return AppConfig.Env
}

// IsProduction checks if the environment is production
func IsProduction() bool {
	return GetEnv() == "production"
}
