package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	OpenWeatherAPIKey string
	WeatherBaseURL    string

	S3Bucket    string
	S3RawPrefix string

	MaxRetries     int
	RetryBackoff   time.Duration
	RequestTimeout time.Duration

	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-extract")

	v.SetDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("S3_BUCKET", "weather-flights-data-lake-project")
	v.SetDefault("S3_RAW_PREFIX", "raw/weather/")
	v.SetDefault("MAX_RETRIES", 3)
	v.SetDefault("RETRY_BACKOFF", 3*time.Second)
	v.SetDefault("REQUEST_TIMEOUT", 20*time.Second)
	v.SetDefault("DATABASE_PORT", "5432")

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:       v.GetString("SERVICE_NAME"),
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		OpenWeatherAPIKey: v.GetString("OPENWEATHER_API_KEY"),
		WeatherBaseURL:    v.GetString("WEATHER_BASE_URL"),
		S3Bucket:          v.GetString("S3_BUCKET"),
		S3RawPrefix:       v.GetString("S3_RAW_PREFIX"),
		MaxRetries:        v.GetInt("MAX_RETRIES"),
		RetryBackoff:      v.GetDuration("RETRY_BACKOFF"),
		RequestTimeout:    v.GetDuration("REQUEST_TIMEOUT"),
		DBName:            v.GetString("DATABASE_NAME"),
		DBPassword:        v.GetString("DATABASE_PASSWORD"),
		DBUser:            v.GetString("DATABASE_USER"),
		DBPort:            v.GetString("DATABASE_PORT"),
		DBHost:            v.GetString("DATABASE_HOST"),
	}

	return config, nil
}

// RunLogEnabled reports whether a run-log database was configured.
func (c *Config) RunLogEnabled() bool {
	return c.DBHost != ""
}
