package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultSeedURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Seed     SeedConfig
	AMQP     AMQPConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	RunMigrations bool
}

type SeedConfig struct {
	URL     string
	Timeout time.Duration
}

// AMQPConfig is optional. An empty URL disables seed event publishing.
type AMQPConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// AuthConfig guards /api/init. An empty AdminSecret leaves the route open.
type AuthConfig struct {
	AdminSecret string
	TokenTTL    time.Duration
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables work too (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	seedTimeout := getEnvInt("SEED_TIMEOUT", 30)
	tokenTTL := getEnvInt("ADMIN_TOKEN_TTL_HOURS", 24)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			DBName:        getEnv("DB_NAME", "txdash"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			RunMigrations: getEnv("DB_RUN_MIGRATIONS", "true") == "true",
		},
		Seed: SeedConfig{
			URL:     getEnv("SEED_URL", DefaultSeedURL),
			Timeout: time.Duration(seedTimeout) * time.Second,
		},
		AMQP: AMQPConfig{
			URL:        getEnv("AMQP_URL", ""),
			Exchange:   getEnv("AMQP_EXCHANGE", "txdash"),
			RoutingKey: getEnv("AMQP_ROUTING_KEY", "transactions.seeded"),
		},
		Auth: AuthConfig{
			AdminSecret: getEnv("ADMIN_JWT_SECRET", ""),
			TokenTTL:    time.Duration(tokenTTL) * time.Hour,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
