// Package config handles configuration for the client: defaults, optional
// JSON file overlay, and command-line flags, in that order of precedence.
package config

import "time"

// Config holds runtime settings for the userportal client.
//
// Fields:
//   - ServerBaseURL: base URL of the account API, e.g. "http://localhost:8080".
//   - RequestTimeout: upper bound on any single API call. No retries are
//     performed; a timed-out call surfaces as a transport failure.
//   - PasswordMinLen: minimum password length enforced by the form rules for
//     both login and registration. Observed variants of the backend disagree
//     (1 vs 8); this client standardizes on 8.
//   - RetainInputOnFailure: when true (default), a rejected or failed
//     submission keeps the entered field values so the user can correct and
//     resubmit; when false the form is cleared. Passwords are wiped either way.
//   - StateDir: directory for the durable session database.
type Config struct {
	ServerBaseURL        string
	RequestTimeout       time.Duration
	PasswordMinLen       int
	RetainInputOnFailure bool
	StateDir             string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.PasswordMinLen = 8
	c.RetainInputOnFailure = true
	c.StateDir = ".userportal"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if a config file was given) and command-line flags. Later sources
// take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
