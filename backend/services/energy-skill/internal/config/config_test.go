package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.HTTPAddress())
	assert.Equal(t, "https://api.givenergy.cloud", cfg.GivEnergy.APIURL)
	assert.Equal(t, "https://givenergy.cloud", cfg.GivEnergy.ControlURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
	assert.False(t, cfg.Breaker.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: "9001"
givenergy:
  apiUrl: http://localhost:4010
  timeout: 2s
breaker:
  enabled: true
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GIVENERGY_BREAKER_MAX_FAILURES", "9")
	t.Setenv("ENERGY_SKILL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9001", cfg.HTTPAddress())
	assert.Equal(t, "http://localhost:4010", cfg.GivEnergy.APIURL)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout())
	assert.True(t, cfg.Breaker.Enabled)
	assert.Equal(t, uint32(9), cfg.BreakerSettings().MaxFailures)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateRejectsRelativeURL(t *testing.T) {
	cfg := Default()
	cfg.GivEnergy.ControlURL = "givenergy.cloud"
	assert.Error(t, cfg.Validate())
}

func TestHTTPAddress(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Port = ":7000"
	assert.Equal(t, ":7000", cfg.HTTPAddress())
	cfg.HTTP.Port = ""
	assert.Equal(t, ":8090", cfg.HTTPAddress())
}
