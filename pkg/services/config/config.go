package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the gateway/CLI configuration, loadable from a file and
// overridable via STAT_ATLAS_* environment variables.
type Config struct {
	BackendURL     string        `mapstructure:"backend_url"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	ListenAddr     string        `mapstructure:"listen_addr"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	UserID         string        `mapstructure:"user_id"`
}

// Load reads the optional config file at path (any format viper supports)
// and applies environment overrides and defaults. An empty path skips the
// file entirely.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("search_debounce", 300*time.Millisecond)

	v.SetEnvPrefix("STAT_ATLAS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("backend_url must not be empty")
	}
	return &cfg, nil
}
