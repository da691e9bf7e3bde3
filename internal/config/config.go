package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	AppEnv          string
	LogLevel        string
	ShutdownTimeout time.Duration

	DBDriver          string
	DatabaseDSN       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	SeedFile string

	GCSBucket          string
	GCSCredentialsFile string
	AssetBaseURL       string
	UploadMaxRetries   int
	UploadRetryDelay   time.Duration

	CORSAllowedOrigins []string
}

// LoadConfig reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:            getEnvString("PORT", "8000"),
		AppEnv:          getEnvString("APP_ENV", "production"),
		LogLevel:        getEnvString("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBDriver:          getEnvString("DB_DRIVER", "sqlite"),
		DatabaseDSN:       getEnvString("DATABASE_DSN", "savvy.db"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),

		SeedFile: getEnvString("SEED_FILE", "data.json"),

		GCSBucket:          getEnvString("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnvString("GCS_CREDENTIALS_FILE", ""),
		AssetBaseURL:       getEnvString("ASSET_BASE_URL", ""),
		UploadMaxRetries:   getEnvInt("UPLOAD_MAX_RETRIES", 3),
		UploadRetryDelay:   getEnvDuration("UPLOAD_RETRY_DELAY", 500*time.Millisecond),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", nil),
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
