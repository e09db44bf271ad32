package config

import "github.com/aatumaykin/giscleanup/internal/constants"

// Default returns a configuration with every default applied, used when no
// config file is present (fixture runs).
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills zero-valued fields with their defaults.
func applyDefaults(c *Config) {
	if c.Portal.TimeoutSeconds == 0 {
		c.Portal.TimeoutSeconds = constants.DefaultPortalTimeoutSeconds
	}

	if c.Thresholds.YearsUnviewed == 0 {
		c.Thresholds.YearsUnviewed = constants.DefaultYearsUnviewed
	}
	if c.Thresholds.YearsInactive == 0 {
		c.Thresholds.YearsInactive = constants.DefaultYearsInactive
	}
	if c.Thresholds.YearsUnmodified == 0 {
		c.Thresholds.YearsUnmodified = constants.DefaultYearsUnmodified
	}

	if c.Limits.MaxUsers == 0 {
		c.Limits.MaxUsers = constants.DefaultMaxUsers
	}
	if c.Limits.MaxItemsPerUser == 0 {
		c.Limits.MaxItemsPerUser = constants.DefaultMaxItemsPerUser
	}

	if c.Output.Dir == "" {
		c.Output.Dir = constants.DefaultOutputDir
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}
