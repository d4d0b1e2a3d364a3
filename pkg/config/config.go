package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Streaming StreamingConfig
	Optimizer OptimizerConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type StreamingConfig struct {
	APIKey       string
	APIURL       string
	Country      string
	MonthlyQuota int
	DailyLimit   int
}

type OptimizerConfig struct {
	// SolveTimeoutMs bounds a single weight run; 0 means no limit.
	SolveTimeoutMs int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid redis database")
		}
		redisDB = parsed
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MyStreamSaver API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "mystreamsaver"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Streaming: StreamingConfig{
			APIKey:       getEnv("STREAMING_API_KEY", ""),
			APIURL:       getEnv("STREAMING_API_URL", "https://streaming-availability.p.rapidapi.com"),
			Country:      getEnv("STREAMING_API_COUNTRY", "us"),
			MonthlyQuota: getEnvInt("STREAMING_API_MONTHLY_QUOTA", 25000),
			DailyLimit:   getEnvInt("STREAMING_API_DAILY_LIMIT", 800),
		},
		Optimizer: OptimizerConfig{
			SolveTimeoutMs: getEnvInt("OPTIMIZER_SOLVE_TIMEOUT_MS", 5000),
		},
	}

	if cfg.Streaming.APIKey == "" {
		return nil, errors.New("missing streaming api key")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return defaultVal
}
