// Package config resolves runtime settings from defaults, an optional config
// file, TASKBOARD_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"taskboard/internal/auth"
	"taskboard/internal/github"
	"taskboard/internal/telegram"
)

// EnvPrefix prefixes every environment override, e.g. TASKBOARD_ADDR.
const EnvPrefix = "TASKBOARD"

// Config holds the resolved settings.
type Config struct {
	Addr        string        `mapstructure:"addr"`
	DBPath      string        `mapstructure:"db"`
	StaticDir   string        `mapstructure:"static"`
	LogLevel    string        `mapstructure:"log_level"`
	LoginDelay  time.Duration `mapstructure:"login_delay"`
	LoginRate   int           `mapstructure:"login_rate"`
	GithubURL   string        `mapstructure:"github_url"`
	TelegramURL string        `mapstructure:"telegram_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// New returns a viper instance with defaults and environment lookup set up.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("db", "data/taskboard.db")
	v.SetDefault("static", "web/dist")
	v.SetDefault("log_level", "info")
	v.SetDefault("login_delay", auth.DefaultLoginDelay)
	v.SetDefault("login_rate", 30)
	v.SetDefault("github_url", github.DefaultBaseURL)
	v.SetDefault("telegram_url", telegram.DefaultBaseURL)
	v.SetDefault("http_timeout", 15*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and decodes everything into a Config.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", file, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Addr == "":
		return errors.New("config: addr must not be empty")
	case c.DBPath == "":
		return errors.New("config: db must not be empty")
	case c.LoginRate <= 0:
		return errors.New("config: login_rate must be positive")
	case c.LoginDelay < 0:
		return errors.New("config: login_delay must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("config: unknown log level %q", name)
	}
	return lvl, nil
}

// Logger returns a text logger on stdout at the configured level.
func (c Config) Logger() *slog.Logger {
	return c.LoggerTo(os.Stdout)
}

// LoggerTo returns a text logger on w at the configured level. Commands that
// print results on stdout log to stderr through it.
func (c Config) LoggerTo(w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
