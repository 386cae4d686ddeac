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
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, int64(50), cfg.Prices.CV)
	assert.Equal(t, int64(30), cfg.Prices.Cover)
	assert.Equal(t, int64(70), cfg.Prices.Bundle)
	assert.Equal(t, "ZMW", cfg.Prices.Currency)
	assert.Equal(t, int64(200*1024), cfg.MaxSnapshotBytes)
	assert.True(t, cfg.SuggestionsEnabled)
	assert.Empty(t, cfg.AdminEmails)
}

func TestParseJsonOverlay(t *testing.T) {
	body := `{
		"endpoint_addr_http": ":9090",
		"secret_key": "prod-secret",
		"access_token_validity_duration": "30m",
		"price_bundle": 65,
		"admin_emails": "Admin@Example.com, ops@example.com",
		"suggestions_enabled": false
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "prod-secret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, int64(65), cfg.Prices.Bundle)
	// untouched fields keep defaults
	assert.Equal(t, int64(50), cfg.Prices.CV)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.False(t, cfg.SuggestionsEnabled)
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-a", ":7070", "-t", "5", "-admin-subjects", "42,77"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, []string{"42", "77"}, cfg.AdminSubjects)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a@b.c", "d@e.f"}, splitList(" A@b.c ,, d@e.f "))
	assert.Nil(t, splitList(""))
}
