// Package config loads and validates application configuration from
// environment variables. Errors are collected across all variables and
// reported together, so a misconfigured deployment fails fast with one
// complete message instead of one variable at a time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig configures the PostgreSQL connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds JWT issuance settings. All four fields are required; the
// server refuses to start without them.
type AuthConfig struct {
	JWTKey        string
	JWTIssuer     string
	JWTAudience   string
	JWTExpiration time.Duration
}

// PasswordHashConfig holds the Argon2id cost parameters.
type PasswordHashConfig struct {
	HashLength  int
	SaltLength  int
	TimeCost    int
	MemoryCost  int // KiB
	Parallelism int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration, constructed once at startup and
// passed explicitly into each component's constructor.
type AppConfig struct {
	DB           *PoolConfig
	Auth         *AuthConfig
	PasswordHash *PasswordHashConfig
	Server       *ServerConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got %q: %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getRequiredEnvDuration(key string, errs *[]string) time.Duration {
	valueStr := getRequiredEnv(key, errs)
	if valueStr == "" {
		return 0
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got %q: %v", key, valueStr, err))
		return 0
	}
	return valueDuration
}

// clampPoolSize keeps the pool size within 5..100.
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 5 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 5", varName, size))
		return 5
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig reads and validates all configuration from the environment. It
// returns a single aggregated error if any variable is missing or malformed.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := getOptionalEnvInt("DB_POOL_SIZE", 10, &errs)
	poolSize = clampPoolSize(poolSize, "DB_POOL_SIZE", &errs)

	db := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Signing key, issuer, audience and expiration are all required: a token
	// issued without any of them could not be verified later.
	auth := &AuthConfig{
		JWTKey:        getRequiredEnv("JWT_KEY", &errs),
		JWTIssuer:     getRequiredEnv("JWT_ISSUER", &errs),
		JWTAudience:   getRequiredEnv("JWT_AUDIENCE", &errs),
		JWTExpiration: getRequiredEnvDuration("JWT_EXPIRATION", &errs),
	}

	passwordHash := &PasswordHashConfig{
		HashLength:  getOptionalEnvInt("PASSWORD_HASH_LENGTH", 32, &errs),
		SaltLength:  getOptionalEnvInt("PASSWORD_SALT_LENGTH", 16, &errs),
		TimeCost:    getOptionalEnvInt("PASSWORD_TIME_COST", 4, &errs),
		MemoryCost:  getOptionalEnvInt("PASSWORD_MEMORY_COST", 65536, &errs),
		Parallelism: getOptionalEnvInt("PASSWORD_PARALLELISM", 4, &errs),
	}

	server := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB:           db,
		Auth:         auth,
		PasswordHash: passwordHash,
		Server:       server,
	}, nil
}
