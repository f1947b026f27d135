package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobsentry_test")
	t.Setenv("JWT_SECRET", "test-secret")
	// Point at a nonexistent tuning file so a stray configs/scraper.yaml in
	// the working directory can't leak into the test.
	t.Setenv("SCRAPER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SCRAPE_INTERVAL_HOURS", "")
	t.Setenv("SCRAPE_TIMEOUT", "")
	t.Setenv("FETCH_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 6, cfg.ScrapeIntervalHours)
	assert.Equal(t, 2*time.Minute, cfg.ScrapeTimeout)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Zero(t, cfg.Scraper.WindowSize)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_InvalidInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("SCRAPE_INTERVAL_HOURS", "zero")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_TuningFile(t *testing.T) {
	setRequired(t)

	path := filepath.Join(t.TempDir(), "scraper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"window_size: 2000\nmax_candidates: 10\nstoplist:\n  - cookie\n"), 0o644))
	t.Setenv("SCRAPER_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Scraper.WindowSize)
	assert.Equal(t, 10, cfg.Scraper.MaxCandidates)
	assert.Equal(t, []string{"cookie"}, cfg.Scraper.Stoplist)
}

func TestLoad_MalformedTuningFileIsFatal(t *testing.T) {
	setRequired(t)

	path := filepath.Join(t.TempDir(), "scraper.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window_size: [not an int\n"), 0o644))
	t.Setenv("SCRAPER_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}
