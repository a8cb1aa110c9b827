package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is fine.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overrides cfg from JOBBOARD_* variables. Unparseable numbers keep
// the current value.
func ApplyEnv(cfg *Config) {
	cfg.App.Host = getEnvString("JOBBOARD_HOST", cfg.App.Host)
	cfg.App.Port = getEnvInt("JOBBOARD_PORT", cfg.App.Port)
	cfg.App.DBFile = getEnvString("JOBBOARD_DB_FILE", cfg.App.DBFile)
	cfg.App.LockFile = getEnvBool("JOBBOARD_LOCK_FILE", cfg.App.LockFile)

	cfg.Log.Level = getEnvString("JOBBOARD_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnvString("JOBBOARD_LOG_FORMAT", cfg.Log.Format)

	if v, ok := os.LookupEnv("JOBBOARD_CORS_ORIGINS"); ok {
		cfg.CORS.AllowedOrigins = strings.Split(v, ",")
	}

	cfg.RateLimit.RequestsPerSecond = getEnvFloat("JOBBOARD_RATE_LIMIT_RPS", cfg.RateLimit.RequestsPerSecond)
	cfg.RateLimit.Burst = getEnvInt("JOBBOARD_RATE_LIMIT_BURST", cfg.RateLimit.Burst)

	cfg.Events.KeepaliveSeconds = getEnvInt("JOBBOARD_EVENTS_KEEPALIVE", cfg.Events.KeepaliveSeconds)

	cfg.Seed.Enabled = getEnvBool("JOBBOARD_SEED", cfg.Seed.Enabled)
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

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
