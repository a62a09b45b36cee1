package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Workflow                  WorkflowConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        string
	Username    string
	Password    string
	Name        string
	DSN         string
	AutoMigrate bool
}

// maxLookupLimit matches the largest page the stores will return.
const maxLookupLimit = 100

// WorkflowConfig tunes the appointment status workflow.
type WorkflowConfig struct {
	GuardDelay  time.Duration
	LookupLimit int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	if driver != "mysql" && driver != "postgres" {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: expected mysql or postgres", driver)
	}

	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	dbConfig := DatabaseConfig{
		Driver:      driver,
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        getEnv("DB_PORT", defaultPort),
		Username:    getEnv("DB_USERNAME", "root"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "vetclinic"),
		AutoMigrate: parseBool(getEnv("AUTO_MIGRATE", "true")),
	}

	// DATABASE_URL wins over the individual parts when set
	if url := os.Getenv("DATABASE_URL"); url != "" {
		dbConfig.DSN = url
	} else {
		dbConfig.DSN = buildDSN(dbConfig)
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	guardDelayMs, err := strconv.Atoi(getEnv("STATUS_GUARD_DELAY_MS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_GUARD_DELAY_MS: %w", err)
	}
	if guardDelayMs < 0 {
		return nil, fmt.Errorf("invalid STATUS_GUARD_DELAY_MS: must not be negative")
	}

	lookupLimit, err := strconv.Atoi(getEnv("RECORD_LOOKUP_LIMIT", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECORD_LOOKUP_LIMIT: %w", err)
	}
	if lookupLimit <= 0 || lookupLimit > maxLookupLimit {
		return nil, fmt.Errorf("invalid RECORD_LOOKUP_LIMIT: must be between 1 and %d", maxLookupLimit)
	}

	return &Config{
		Port:             getEnv("PORT", "3001"),
		Origin:           getEnv("ORIGIN", "http://localhost:3000"),
		Environment:      getEnv("APP_ENV", "development"),
		JWTSecret:        getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:         dbConfig,
		Workflow: WorkflowConfig{
			GuardDelay:  time.Duration(guardDelayMs) * time.Millisecond,
			LookupLimit: lookupLimit,
		},
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

func buildDSN(db DatabaseConfig) string {
	if db.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			db.Host, db.Port, db.Username, db.Password, db.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		db.Username, db.Password, db.Host, db.Port, db.Name)
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
