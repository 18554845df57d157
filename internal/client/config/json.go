package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/amishiro/userportal/internal/flagx"
)

// jsonConfig is the DTO for JSON unmarshalling. Durations are given in
// seconds so config files stay plain numbers.
type jsonConfig struct {
	ServerBaseURL        *string `json:"server_base_url"`
	RequestTimeoutSec    *int    `json:"request_timeout_sec"`
	PasswordMinLen       *int    `json:"password_min_len"`
	RetainInputOnFailure *bool   `json:"retain_input_on_failure"`
	StateDir             *string `json:"state_dir"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent file path means no overlay; pointer fields let a
// file override only the keys it mentions. Read or unmarshal errors panic,
// matching the fail-fast policy of startup configuration.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.RequestTimeoutSec != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeoutSec) * time.Second
	}
	if jc.PasswordMinLen != nil {
		cfg.PasswordMinLen = *jc.PasswordMinLen
	}
	if jc.RetainInputOnFailure != nil {
		cfg.RetainInputOnFailure = *jc.RetainInputOnFailure
	}
	if jc.StateDir != nil {
		cfg.StateDir = *jc.StateDir
	}
}
