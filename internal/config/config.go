// Package config loads environment variables and the optional scraper tuning
// file at startup. Fail-fast: missing required variables abort the process
// before anything connects.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for the jobsentry backend.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string // optional; empty disables the seen-cache
	JWTSecret   string

	GmailCredentialsFile string
	GmailTokenFile       string

	ScrapeIntervalHours int           // how often the cron trigger fires
	ScrapeTimeout       time.Duration // wall-clock cap for one full run
	FetchTimeout        time.Duration // per-page HTTP timeout

	Scraper ScraperTuning
}

// ScraperTuning is the optional configs/scraper.yaml overlay. Zero values fall
// back to the extractor's built-in defaults.
type ScraperTuning struct {
	WindowSize    int      `yaml:"window_size"`
	MaxCandidates int      `yaml:"max_candidates"`
	URLRadius     int      `yaml:"url_radius"`
	Stoplist      []string `yaml:"stoplist"`
}

// Load reads environment variables (plus .env if present) and returns a
// validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	interval := 6
	if s := os.Getenv("SCRAPE_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SCRAPE_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	scrapeTimeout := 2 * time.Minute
	if s := os.Getenv("SCRAPE_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("SCRAPE_TIMEOUT must be a positive duration, got %q", s)
		}
		scrapeTimeout = d
	}

	fetchTimeout := 15 * time.Second
	if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("FETCH_TIMEOUT must be a positive duration, got %q", s)
		}
		fetchTimeout = d
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          dbURL,
		RedisURL:             os.Getenv("REDIS_URL"),
		JWTSecret:            secret,
		GmailCredentialsFile: getEnv("GMAIL_CREDENTIALS_FILE", "credentials.json"),
		GmailTokenFile:       getEnv("GMAIL_TOKEN_FILE", "token.json"),
		ScrapeIntervalHours:  interval,
		ScrapeTimeout:        scrapeTimeout,
		FetchTimeout:         fetchTimeout,
	}

	if err := loadTuning(getEnv("SCRAPER_CONFIG", "configs/scraper.yaml"), &cfg.Scraper); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadTuning reads the yaml overlay. A missing file is fine; a malformed one
// is a startup error so bad tuning never silently reverts to defaults.
func loadTuning(path string, out *ScraperTuning) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
