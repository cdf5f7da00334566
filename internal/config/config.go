package config

import (
	"os"
	"strconv"
)

// Config carries the service settings, read from the environment with
// sensible defaults. godotenv loads a .env file into the environment before
// this runs (see main).
type Config struct {
	Port string

	PoolSize     int
	CacheDir     string
	MaxCacheSize int

	// Per-call screenshot defaults.
	Width    int
	Height   int
	Quality  int
	Format   string
	Timeout  int // ms
	WaitTime int // ms

	MaxPathDepth int
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:         getString("PORT", "8080"),
		PoolSize:     getInt("POOL_SIZE", 3),
		CacheDir:     getString("CACHE_DIR", "./cache/screenshot_cache"),
		MaxCacheSize: getInt("MAX_CACHE_SIZE", 100),
		Width:        getInt("SCREENSHOT_WIDTH", 200),
		Height:       getInt("SCREENSHOT_HEIGHT", 150),
		Quality:      getInt("SCREENSHOT_QUALITY", 90),
		Format:       getString("SCREENSHOT_FORMAT", "jpeg"),
		Timeout:      getInt("NAV_TIMEOUT_MS", 30000),
		WaitTime:     getInt("WAIT_TIME_MS", 2000),
		MaxPathDepth: getInt("MAX_PATH_DEPTH", 3),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
