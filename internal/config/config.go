package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultSourceURL is the members endpoint fetched at startup.
const DefaultSourceURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

// Config holds application configuration.
type Config struct {
	Source SourceConfig
	UI     UIConfig
	Log    LogConfig
	Demo   DemoConfig
}

// SourceConfig describes where members are loaded from.
type SourceConfig struct {
	URL     string
	Timeout time.Duration
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// LogConfig holds the operator log settings. The terminal belongs to the
// TUI, so logs always go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// DemoConfig replaces the fetch with generated members when Members > 0.
type DemoConfig struct {
	Members int
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"source":    "source.url",
	"timeout":   "source.timeout",
	"page-size": "ui.page_size",
	"log-file":  "log.path",
	"log-level": "log.level",
	"demo":      "demo.members",
}

// AddFlags registers the flags Load understands.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to config.toml (default $MEMBERADMIN_CONFIG or ~/.config/memberadmin/config.toml)")
	fs.String("source", "", "members URL, file:// URL or local JSON/JSONC path")
	fs.Duration("timeout", 0, "fetch timeout")
	fs.Int("page-size", 0, "rows per page")
	fs.String("log-file", "", "log file path")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.Int("demo", 0, "generate this many demo members instead of fetching")
}

// Load reads configuration from defaults, the config file, env and flags, in
// increasing precedence. Env var overrides use prefix MEMBERADMIN_.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("source.timeout", "10s")
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "memberadmin", "memberadmin.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("demo.members", 0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MEMBERADMIN_CONFIG")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "memberadmin"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MEMBERADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// a missing default config is fine; an explicit path must exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.UI.PageSize < 1 {
		return fmt.Errorf("ui.page_size must be at least 1, got %d", c.UI.PageSize)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout)
	}
	if strings.TrimSpace(c.Source.URL) == "" && c.Demo.Members <= 0 {
		return fmt.Errorf("source.url is empty")
	}
	if c.Demo.Members < 0 {
		return fmt.Errorf("demo.members must not be negative, got %d", c.Demo.Members)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
