// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package config

import (
	"fmt"
	"strings"
	"time"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validEnvironments = map[string]bool{
	"development": true,
	"production":  true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if strings.Contains(c.Server.Base, "/") {
		return fmt.Errorf("MARVIN_BASE must be a single path segment, got %q", c.Server.Base)
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	return nil
}

// validateData checks the release table. Every release needs a DRP version
// because cube file paths are derived from it.
func (c *Config) validateData() error {
	if c.Data.ReduxPath == "" {
		return fmt.Errorf("MANGA_SPECTRO_REDUX is required")
	}
	if len(c.Data.Releases) == 0 {
		return fmt.Errorf("at least one release must be configured under data.releases")
	}
	for name, rc := range c.Data.Releases {
		if rc.DRPVer == "" {
			return fmt.Errorf("release %s has no drpver", name)
		}
	}
	if _, ok := c.Data.Releases[c.Data.DefaultRelease]; !ok {
		return fmt.Errorf("MARVIN_RELEASE %q is not a configured release (have: %s)",
			c.Data.DefaultRelease, strings.Join(c.Data.ReleaseNames(), ", "))
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.CubeCapacity < 1 {
		return fmt.Errorf("CUBE_CACHE_CAPACITY must be at least 1")
	}
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("CACHE_PATH is required when CACHE_ENABLED=true")
	}
	if c.Cache.TTL < time.Second {
		return fmt.Errorf("CACHE_TTL must be at least 1s")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Server.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
