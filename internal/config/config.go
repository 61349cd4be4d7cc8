// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package config

import (
	"fmt"
	"sort"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	rc, ok := cfg.Data.Lookup("MPL-4") // rc.DRPVer == "v1_5_1"
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Base        string        `koanf:"base"`        // URL prefix, e.g. "marvin2" -> /marvin2/api/...
	Environment string        `koanf:"environment"` // development or production
	LibPath     string        `koanf:"lib_path"`    // served under /{base}/lib/
}

// DataConfig describes where survey products live and which releases are served.
type DataConfig struct {
	ReduxPath      string                   `koanf:"redux_path"`
	DefaultRelease string                   `koanf:"default_release"`
	Releases       map[string]ReleaseConfig `koanf:"releases"`
}

// ReleaseConfig maps a data release to its pipeline versions.
type ReleaseConfig struct {
	DRPVer string `koanf:"drpver"`
	DAPVer string `koanf:"dapver"`
}

// DatabaseConfig holds DuckDB settings for the cube metadata store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
	Seed      bool   `koanf:"seed"`
}

// CacheConfig controls the in-memory cube LRU and the on-disk spectrum cache.
type CacheConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Path         string        `koanf:"path"`
	TTL          time.Duration `koanf:"ttl"`
	CubeCapacity int           `koanf:"cube_capacity"`
	CubeTTL      time.Duration `koanf:"cube_ttl"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration using Koanf with layered sources.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Lookup returns the pipeline versions for a release.
func (d DataConfig) Lookup(release string) (ReleaseConfig, bool) {
	rc, ok := d.Releases[release]
	return rc, ok
}

// ReleaseNames returns the configured releases in sorted order.
func (d DataConfig) ReleaseNames() []string {
	names := make([]string, 0, len(d.Releases))
	for name := range d.Releases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIPrefix returns the mount point of the versioned API, e.g. "/marvin2/api".
func (s ServerConfig) APIPrefix() string {
	return s.BasePath() + "/api"
}

// BasePath returns the URL prefix with a leading slash, or "" when unset.
func (s ServerConfig) BasePath() string {
	if s.Base == "" {
		return ""
	}
	return "/" + s.Base
}
