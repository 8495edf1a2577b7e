package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

type ServerConfig struct {
	Port    string
	BaseURL string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Key      string
}

// TrackerConfig can be overridden by the YAML file named in TRACKER_CONFIG.
type TrackerConfig struct {
	IdleDetectionSeconds int      `yaml:"idle_detection_seconds"`
	InternalSchemes      []string `yaml:"internal_schemes"`
	Timezone             string   `yaml:"timezone"`
}

type Config struct {
	Server  ServerConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	Tracker TrackerConfig
	Store   string
	Env     string
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		IdleDetectionSeconds: 60,
		InternalSchemes: []string{
			"chrome", "edge", "chrome-extension", "moz-extension", "about", "devtools", "view-source",
		},
		Timezone: "Local",
	}
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		DB: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "tabsnoop"),
			Password:    getEnv("DB_PASS", "tabsnoop"),
			DBName:      getEnv("DB_NAME", "tabsnoop"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SQLitePath:  getEnv("SQLITE_PATH", "tabsnoop.db"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Key:      getEnv("REDIS_KEY", "tabsnoop:domains"),
		},
		Tracker: DefaultTrackerConfig(),
		Store:   strings.ToLower(getEnv("STORE_BACKEND", StoreSQLite)),
		Env:     getEnv("ENV", "prod"),
	}

	if tz, exists := os.LookupEnv("TZ_LOCATION"); exists {
		cfg.Tracker.Timezone = tz
	}

	if path := getEnv("TRACKER_CONFIG", ""); path != "" {
		tracker, err := LoadTrackerConfig(path, cfg.Tracker)
		if err != nil {
			log.Printf("Warning: %v, using default tracker settings", err)
		} else {
			cfg.Tracker = *tracker
		}
	}

	return cfg
}

// LoadTrackerConfig reads a YAML file and merges it over base. Fields missing
// from the file keep the value from base.
func LoadTrackerConfig(path string, base TrackerConfig) (*TrackerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tracker config: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing tracker config: %w", err)
	}

	if cfg.IdleDetectionSeconds < 15 {
		return nil, fmt.Errorf("idle_detection_seconds must be at least 15, got %d", cfg.IdleDetectionSeconds)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves the configured time zone used for the "today" rollup.
func (c TrackerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}

	return loc, nil
}

// PostgresURL is the lib/pq connection url. Credentials are escaped.
func (c DatabaseConfig) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
