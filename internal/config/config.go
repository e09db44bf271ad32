package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads, defaults and expands a TOML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := expandEnvVars(&cfg); err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration and returns all problems found.
func (c *Config) Validate() []error {
	var errors []error

	if c.Portal.URL == "" {
		errors = append(errors, fmt.Errorf("portal.url is required"))
	} else if u, err := url.Parse(c.Portal.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errors = append(errors, fmt.Errorf("portal.url must be a valid http(s) URL, got: %s", c.Portal.URL))
	}

	// Either a pre-issued token or username+password must be present.
	if c.Portal.Token == "" {
		if c.Portal.Username == "" {
			errors = append(errors, fmt.Errorf("portal.username is required when portal.token is not set"))
		}
		if c.Portal.Password == "" {
			errors = append(errors, fmt.Errorf("portal.password is required when portal.token is not set"))
		}
	}

	if c.Portal.TimeoutSeconds < 0 {
		errors = append(errors, fmt.Errorf("portal.timeout_seconds cannot be negative"))
	}

	if c.Thresholds.YearsUnviewed <= 0 {
		errors = append(errors, fmt.Errorf("thresholds.years_unviewed must be a positive integer, got %d", c.Thresholds.YearsUnviewed))
	}
	if c.Thresholds.YearsInactive <= 0 {
		errors = append(errors, fmt.Errorf("thresholds.years_inactive must be a positive integer, got %d", c.Thresholds.YearsInactive))
	}
	if c.Thresholds.YearsUnmodified <= 0 {
		errors = append(errors, fmt.Errorf("thresholds.years_unmodified must be a positive integer, got %d", c.Thresholds.YearsUnmodified))
	}

	if c.Limits.MaxUsers <= 0 {
		errors = append(errors, fmt.Errorf("limits.max_users must be a positive integer, got %d", c.Limits.MaxUsers))
	}
	if c.Limits.MaxItemsPerUser <= 0 {
		errors = append(errors, fmt.Errorf("limits.max_items_per_user must be a positive integer, got %d", c.Limits.MaxItemsPerUser))
	}

	if c.Output.Dir == "" {
		errors = append(errors, fmt.Errorf("output.dir is required"))
	} else if err := validatePath(c.Output.Dir, "output.dir"); err != nil {
		errors = append(errors, err)
	}

	if c.Logging.Level == "" {
		errors = append(errors, fmt.Errorf("logging.level is required"))
	} else {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
		}
	}

	if c.Logging.Format == "" {
		errors = append(errors, fmt.Errorf("logging.format is required"))
	} else {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
		}
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	return errors
}

func validatePath(path, fieldName string) error {
	if path == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	if strings.HasPrefix(path, "~") {
		return nil
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("%s contains potentially dangerous path traversal sequence", fieldName)
	}

	return nil
}

// expandEnvVars expands environment references in credential and path fields.
func expandEnvVars(c *Config) error {
	if strings.HasPrefix(c.Portal.Username, "${") {
		c.Portal.Username = expandEnv(c.Portal.Username)
	}
	if strings.HasPrefix(c.Portal.Password, "${") {
		c.Portal.Password = expandEnv(c.Portal.Password)
	}
	if strings.HasPrefix(c.Portal.Token, "${") {
		c.Portal.Token = expandEnv(c.Portal.Token)
	}

	if strings.HasPrefix(c.Output.Dir, "${") {
		c.Output.Dir = expandEnv(c.Output.Dir)
	}
	c.Output.Dir = expandHome(c.Output.Dir)

	return nil
}

// expandEnv expands a ${VAR} or ${VAR:default} reference.
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		key := parts[0]
		defaultVal := parts[1]
		if val := os.Getenv(key); val != "" {
			return val
		}
		return defaultVal
	}

	return os.Getenv(s[2:end])
}

// expandHome expands a leading ~ in a path.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
