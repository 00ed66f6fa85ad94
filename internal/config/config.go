package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Port          int
	MaxAmount     float64
	MaxRate       float64
	MaxGrowthRate float64
	MaxDuration   int
	MaxLoanTerm   int

	CacheBackend string
	CacheSize    int
	CacheTTL     time.Duration
	RedisAddr    string
	RedisDB      int

	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
}

// Поддерживаемые хранилища кеша расчетов
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnvInt("PORT", 8000),
		MaxAmount:     getEnvFloat("MAX_AMOUNT", 1e9),
		MaxRate:       getEnvFloat("MAX_RATE", 100),
		MaxGrowthRate: getEnvFloat("MAX_GROWTH_RATE", 1.0),
		MaxDuration:   getEnvInt("MAX_DURATION", 10),
		MaxLoanTerm:   getEnvInt("MAX_LOAN_TERM", 30),

		CacheBackend: strings.ToLower(getEnvString("CACHE_BACKEND", CacheMemory)),
		CacheSize:    getEnvInt("CACHE_SIZE", 1024),
		CacheTTL:     getEnvDuration("CACHE_TTL", 10*time.Minute),
		RedisAddr:    getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),

		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "mba-roi-calculator"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки сразу
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if c.MaxAmount <= 0 {
		problems = append(problems, fmt.Sprintf("invalid max amount %v: must be positive", c.MaxAmount))
	}
	if c.MaxRate <= 0 {
		problems = append(problems, fmt.Sprintf("invalid max rate %v: must be positive", c.MaxRate))
	}
	if c.MaxGrowthRate <= 0 {
		problems = append(problems, fmt.Sprintf("invalid max growth rate %v: must be positive", c.MaxGrowthRate))
	}
	if c.MaxDuration < 0 {
		problems = append(problems, fmt.Sprintf("invalid max duration %d: must be at least 0", c.MaxDuration))
	}
	if c.MaxLoanTerm < 1 {
		problems = append(problems, fmt.Sprintf("invalid max loan term %d: must be at least 1", c.MaxLoanTerm))
	}

	switch c.CacheBackend {
	case CacheNone:
	case CacheMemory:
		if c.CacheSize < 1 {
			problems = append(problems, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
		}
	case CacheRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "redis address cannot be empty when using redis cache backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid cache backend '%s': must be one of [%s %s %s]",
			c.CacheBackend, CacheNone, CacheMemory, CacheRedis))
	}
	if c.CacheBackend != CacheNone && c.CacheTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid cache ttl %v: must be positive", c.CacheTTL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Addr адрес, на котором слушает HTTP сервер
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
