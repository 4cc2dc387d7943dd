package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	URL         string
	AutoMigrate bool
	MaxConns    int
}

type RESTConfig struct {
	Port         string
	ClientOrigin string
}

type AuthConfig struct {
	SigningKey     string
	AccessTokenTTL time.Duration
}

type PostcodesConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	AppName      string
	Database     DBConfig
	Rest         RESTConfig
	Auth         AuthConfig
	Postcodes    PostcodesConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
	RabbitMQ     RabbitMQConfig
}

// LoadConfig reads configuration from the environment, after loading a .env
// file if one exists. A missing .env file is not an error.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: no .env file found (path: %v), using process environment.\n", envPath)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "property-direct")

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.Database.AutoMigrate = getEnvAsBool("DATABASE_AUTO_MIGRATE", false)
	cfg.Database.MaxConns = getEnvAsInt("DATABASE_MAX_CONNS", 10)

	cfg.Rest.Port = getEnvAsString("PORT", "8000")
	cfg.Rest.ClientOrigin = getEnvAsString("CLIENT_ORIGIN", "")

	cfg.Auth.SigningKey = os.Getenv("JWT_SIGNING_KEY")
	if cfg.Auth.SigningKey == "" {
		return nil, fmt.Errorf("JWT_SIGNING_KEY environment variable is required")
	}
	cfg.Auth.AccessTokenTTL = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour)

	cfg.Postcodes.BaseURL = strings.TrimRight(getEnvAsString("POSTCODES_API_URL", "https://api.postcodes.io"), "/")
	cfg.Postcodes.Timeout = getEnvAsDuration("POSTCODES_API_TIMEOUT", 5*time.Second)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
		cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "")
	}

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: could not parse %s as int: %v. Using default value %d.\n", key, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: could not parse %s as bool: %v. Using default value %t.\n", key, err, defaultValue)
		return defaultValue
	}
	return valueBool
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: could not parse %s as duration: %v. Using default value %s.\n", key, err, defaultValue)
		return defaultValue
	}
	return valueDuration
}
