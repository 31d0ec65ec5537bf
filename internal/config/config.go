package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// RepoConfigFileName is the repository config file, stored inside the .git directory
const RepoConfigFileName = ".gb_config"

// DefaultCacheFileName is the cache file, stored inside the .git directory
const DefaultCacheFileName = "gb_cache.json"

// DefaultStaleAfter is the tip age at which a branch is shown as stale
const DefaultStaleAfter = 14 * 24 * time.Hour

// RepoConfig represents the repository configuration file
type RepoConfig struct {
	CacheFile      *string `json:"cacheFile,omitempty"`
	StaleAfterDays *int    `json:"staleAfterDays,omitempty"`
}

// Config holds resolved settings for one run
type Config struct {
	// CachePath is where range counts are persisted
	CachePath string
	// CacheEnabled controls loading and dumping CachePath
	CacheEnabled bool
	// StaleAfter is the tip age at which a branch is shown as stale
	StaleAfter time.Duration

	Debug bool

	LogFile       string
	LogMaxSize    int // megabytes
	LogMaxBackups int
	LogMaxAge     int // days
}

// Default returns the built-in settings for a repository whose metadata
// lives in gitDir
func Default(gitDir string) *Config {
	return &Config{
		CachePath:     filepath.Join(gitDir, DefaultCacheFileName),
		CacheEnabled:  true,
		StaleAfter:    DefaultStaleAfter,
		LogMaxSize:    1,
		LogMaxBackups: 2,
		LogMaxAge:     30,
	}
}

// GetRepoConfig reads the repository configuration. A missing file yields
// an empty config.
func GetRepoConfig(gitDir string) (*RepoConfig, error) {
	configPath := filepath.Join(gitDir, RepoConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil //nolint:nilerr
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// Load resolves settings for the repository rooted at repoRoot with metadata
// in gitDir
func Load(repoRoot, gitDir string) (*Config, error) {
	cfg := Default(gitDir)

	repoConfig, err := GetRepoConfig(gitDir)
	if err != nil {
		return nil, err
	}
	if repoConfig.CacheFile != nil && *repoConfig.CacheFile != "" {
		cfg.CachePath = resolvePath(repoRoot, *repoConfig.CacheFile)
	}
	if repoConfig.StaleAfterDays != nil && *repoConfig.StaleAfterDays > 0 {
		cfg.StaleAfter = time.Duration(*repoConfig.StaleAfterDays) * 24 * time.Hour
	}

	applyEnv(cfg, repoRoot)
	return cfg, nil
}

func applyEnv(cfg *Config, repoRoot string) {
	if path := os.Getenv("GB_CACHE_FILE"); path != "" {
		cfg.CachePath = resolvePath(repoRoot, path)
	}
	if enabled := os.Getenv("GB_CACHE"); enabled == "0" || enabled == "false" {
		cfg.CacheEnabled = false
	}

	cfg.Debug = os.Getenv("DEBUG") != "" || os.Getenv("GB_DEBUG") != ""

	if path := os.Getenv("GB_LOG_FILE"); path != "" {
		cfg.LogFile = resolvePath(repoRoot, path)
	}

	// Override with environment variables
	if maxSizeStr := os.Getenv("GB_LOG_MAX_SIZE"); maxSizeStr != "" {
		if maxSize, err := strconv.Atoi(maxSizeStr); err == nil && maxSize > 0 {
			cfg.LogMaxSize = maxSize
		}
	}

	if maxBackupsStr := os.Getenv("GB_LOG_MAX_BACKUPS"); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			cfg.LogMaxBackups = maxBackups
		}
	}

	if maxAgeStr := os.Getenv("GB_LOG_MAX_AGE"); maxAgeStr != "" {
		if maxAge, err := strconv.Atoi(maxAgeStr); err == nil && maxAge > 0 {
			cfg.LogMaxAge = maxAge
		}
	}
}

func resolvePath(repoRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}
