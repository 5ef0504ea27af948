package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadConfigFrom_Defaults(t *testing.T) {
	// given
	dir := t.TempDir()

	// when
	cfg, err := LoadConfigFrom(filepath.Join(dir, "missing.env"), dir)

	// then
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.Server.URL)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Catalog.SearchDebounce)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.NotEmpty(t, cfg.Storage.Dir)
}

func Test_LoadConfigFrom_File(t *testing.T) {
	// given
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
server:
  url: http://localhost:9000/
  timeout: 3s
  retry_max: 1
catalog:
  page_size: 25
  search_debounce: 250ms
ui:
  theme: LIGHT
storage:
  dir: ""
logging:
  level: debug
`)

	// when
	cfg, err := LoadConfigFrom(filepath.Join(dir, "missing.env"), dir)

	// then
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.Server.URL)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 1, cfg.Server.RetryMax)
	assert.Equal(t, 25, cfg.Catalog.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Catalog.SearchDebounce)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Empty(t, cfg.Storage.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func Test_LoadConfigFrom_EnvOverridesFile(t *testing.T) {
	// given
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "catalog:\n  page_size: 25\n")
	t.Setenv("STOREFRONT_CATALOG_PAGE_SIZE", "40")
	t.Setenv("STOREFRONT_SERVER_BREAKER_FAILURES", "7")

	// when
	cfg, err := LoadConfigFrom(filepath.Join(dir, "missing.env"), dir)

	// then
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Catalog.PageSize)
	assert.Equal(t, uint32(7), cfg.Server.BreakerFailures)
}

func Test_LoadConfigFrom_DotEnv(t *testing.T) {
	// given
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "STOREFRONT_UI_THEME=dark\n")
	t.Cleanup(func() { _ = os.Unsetenv("STOREFRONT_UI_THEME") })

	// when
	cfg, err := LoadConfigFrom(envFile, dir)

	// then
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func Test_Config_Normalize(t *testing.T) {
	testCases := []struct {
		name  string
		edit  func(c *Config)
		check func(t *testing.T, c *Config)
	}{
		{
			name: "blank url falls back to default",
			edit: func(c *Config) { c.Server.URL = "  " },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultServerURL, c.Server.URL)
			},
		},
		{
			name: "non-positive page size falls back to default",
			edit: func(c *Config) { c.Catalog.PageSize = 0 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 10, c.Catalog.PageSize)
			},
		},
		{
			name: "unknown theme becomes auto",
			edit: func(c *Config) { c.UI.Theme = "solarized" },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "auto", c.UI.Theme)
			},
		},
		{
			name: "negative retries become zero",
			edit: func(c *Config) { c.Server.RetryMax = -2 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 0, c.Server.RetryMax)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			cfg := DefaultConfig()
			tc.edit(cfg)
			// when
			cfg.normalize()
			// then
			tc.check(t, cfg)
		})
	}
}
