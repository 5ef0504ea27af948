package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultServerURL is the public dummyjson catalog
const DefaultServerURL = "https://dummyjson.com"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds catalog API configuration
type ServerConfig struct {
	URL             string        `mapstructure:"url"`
	Timeout         time.Duration `mapstructure:"timeout"`          // Per-attempt HTTP timeout
	RetryMax        int           `mapstructure:"retry_max"`        // Retries for 5xx/429/connection errors
	RetryWaitMin    time.Duration `mapstructure:"retry_wait_min"`   // First backoff step
	RetryWaitMax    time.Duration `mapstructure:"retry_wait_max"`   // Backoff ceiling
	BreakerFailures uint32        `mapstructure:"breaker_failures"` // Consecutive failures before the breaker opens
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"` // Open -> half-open delay
}

// CatalogConfig holds catalog sync configuration
type CatalogConfig struct {
	PageSize          int           `mapstructure:"page_size"`
	SearchDebounce    time.Duration `mapstructure:"search_debounce"`
	PrefetchThreshold int           `mapstructure:"prefetch_threshold"` // Rows from the end that trigger the next page
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"` // "auto", "dark" or "light"
}

// StorageConfig holds local store configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // Empty = memory only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:             DefaultServerURL,
			Timeout:         10 * time.Second,
			RetryMax:        3,
			RetryWaitMin:    500 * time.Millisecond,
			RetryWaitMax:    4 * time.Second,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
		},
		Catalog: CatalogConfig{
			PageSize:          10,
			SearchDebounce:    500 * time.Millisecond,
			PrefetchThreshold: 3,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "storefront", "storefront.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "storefront", "storefront.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "storefront")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "storefront")
	}
}

// defaultDataPath returns the default store directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "storefront", "data")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "storefront", "data")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("", defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration from envFile (optional) and a config.yaml found in dirs.
// Environment variables use the STOREFRONT_ prefix, e.g. STOREFRONT_SERVER_URL.
func LoadConfigFrom(envFile string, dirs ...string) (*Config, error) {
	// .env never overrides variables that are already set
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading env file: %w", err)
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can override keys absent from the file
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("server.retry_max", cfg.Server.RetryMax)
	v.SetDefault("server.retry_wait_min", cfg.Server.RetryWaitMin)
	v.SetDefault("server.retry_wait_max", cfg.Server.RetryWaitMax)
	v.SetDefault("server.breaker_failures", cfg.Server.BreakerFailures)
	v.SetDefault("server.breaker_cooldown", cfg.Server.BreakerCooldown)

	v.SetDefault("catalog.page_size", cfg.Catalog.PageSize)
	v.SetDefault("catalog.search_debounce", cfg.Catalog.SearchDebounce)
	v.SetDefault("catalog.prefetch_threshold", cfg.Catalog.PrefetchThreshold)

	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("storage.dir", cfg.Storage.Dir)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// normalize replaces unusable values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	if c.Server.URL == "" {
		c.Server.URL = def.Server.URL
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = def.Server.Timeout
	}
	if c.Server.RetryMax < 0 {
		c.Server.RetryMax = 0
	}
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = def.Catalog.PageSize
	}
	if c.Catalog.SearchDebounce < 0 {
		c.Catalog.SearchDebounce = 0
	}
	if dir, err := expandHome(c.Storage.Dir); err == nil {
		c.Storage.Dir = dir
	}
	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
		c.UI.Theme = strings.ToLower(c.UI.Theme)
	default:
		c.UI.Theme = def.UI.Theme
	}
}
