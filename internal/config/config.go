// engine/internal/config/config.go
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	DBFile string `yaml:"db_file"`

	// LockFile guards the store with <db_file>.lock so a second process
	// cannot serve or seed the same file.
	LockFile bool `yaml:"lock_file"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | console
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig applies per client IP. RequestsPerSecond 0 disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// EventsConfig tunes /events. KeepaliveSeconds 0 sends no periodic pings.
type EventsConfig struct {
	KeepaliveSeconds int `yaml:"keepalive_seconds"`
}

type SeedConfig struct {
	Enabled bool `yaml:"enabled"`
}

// IconsConfig is layered over the built-in company glyphs at startup.
type IconsConfig struct {
	Default   string            `yaml:"default"`
	Companies map[string]string `yaml:"companies"`
}

type Config struct {
	App       AppConfig       `yaml:"app"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Events    EventsConfig    `yaml:"events"`
	Seed      SeedConfig      `yaml:"seed"`
	Icons     IconsConfig     `yaml:"icons"`
}

func Default() Config {
	return Config{
		App: AppConfig{
			Host:     "0.0.0.0",
			Port:     8000,
			DBFile:   "jobs.db",
			LockFile: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0,
			Burst:             20,
		},
		Seed: SeedConfig{Enabled: true},
		Icons: IconsConfig{
			Default: "🏢",
		},
	}
}

// Load reads path over Default(), so keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// DBPath resolves App.DBFile against dataDir unless it is already absolute.
func (c Config) DBPath(dataDir string) string {
	if filepath.IsAbs(c.App.DBFile) {
		return c.App.DBFile
	}
	return filepath.Join(dataDir, c.App.DBFile)
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.App.Host, strconv.Itoa(c.App.Port))
}
