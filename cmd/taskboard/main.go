// Package main provides the taskboard binary: the HTTP server plus a few
// one-shot commands that work on the same database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/app"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/github"
	"taskboard/internal/storage/sqlite"
	"taskboard/internal/telegram"
)

const (
	Version = "1.0.0"
	appName = "taskboard"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Project and task tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file path (yaml, json or toml)")
	flags.String("db", v.GetString("db"), "Path to sqlite database file")
	flags.String("log-level", v.GetString("log_level"), "Log level (debug, info, warn, error)")
	flags.String("github-url", v.GetString("github_url"), "GitHub API base URL")
	flags.String("telegram-url", v.GetString("telegram_url"), "Telegram Bot API base URL")
	flags.Duration("http-timeout", v.GetDuration("http_timeout"), "Timeout for outbound HTTP calls")
	for key, name := range map[string]string{
		"db":           "db",
		"log_level":    "log-level",
		"github_url":   "github-url",
		"telegram_url": "telegram-url",
		"http_timeout": "http-timeout",
	} {
		mustBind(v, key, flags.Lookup(name))
	}

	load := func() (config.Config, error) {
		return config.Load(v, configPath)
	}

	cmd.AddCommand(
		serveCmd(v, load),
		importCmd(load),
		notifyCmd(load),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

// mustBind lets flag override the config key. Binding only fails for a nil
// flag, which is a programming error.
func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag for %s: %v", key, err))
	}
}

// openApp opens the database and builds the application around it. The
// caller closes the returned store.
func openApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app.App, *sqlite.Store, error) {
	store, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	dir, err := auth.NewDirectory(bcrypt.DefaultCost, auth.DemoAccounts()...)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("build account directory: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	a := app.New(ctx, app.Deps{
		KV:         store,
		Directory:  dir,
		GitHub:     github.NewClient(cfg.GithubURL, httpClient, logger.With("client", "github")),
		Telegram:   telegram.NewClient(cfg.TelegramURL, httpClient, logger.With("client", "telegram")),
		LoginDelay: cfg.LoginDelay,
		Logger:     logger,
	})
	return a, store, nil
}
