package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJSON_OverlaysOnlyGivenKeys(t *testing.T) {
	path := writeConfigFile(t, `{"server_base_url":"http://api.example.org","request_timeout_sec":5}`)

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"client", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	assert.Equal(t, "http://api.example.org", cfg.ServerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	// untouched keys keep their defaults
	assert.Equal(t, 8, cfg.PasswordMinLen)
	assert.True(t, cfg.RetainInputOnFailure)
}

func TestParseJSON_PolicyKeys(t *testing.T) {
	path := writeConfigFile(t, `{"password_min_len":1,"retain_input_on_failure":false}`)

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"client", "-config", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	assert.Equal(t, 1, cfg.PasswordMinLen)
	assert.False(t, cfg.RetainInputOnFailure)
}

func TestParseJSON_NoFileGiven(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"client"}

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	assert.Equal(t, "http://localhost:8080", cfg.ServerBaseURL)
}

func TestParseJSON_BadFilePanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"client", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJSON(&cfg) })
}
