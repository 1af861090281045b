package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taskboard/internal/config"
	"taskboard/internal/server"
)

func serveCmd(v *viper.Viper, load func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and serve the web client",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", v.GetString("addr"), "HTTP listen address")
	flags.String("static", v.GetString("static"), "Directory with built frontend")
	flags.Duration("login-delay", v.GetDuration("login_delay"), "Artificial delay before each login check")
	flags.Int("login-rate", v.GetInt("login_rate"), "Login attempts allowed per client IP per minute")
	mustBind(v, "addr", flags.Lookup("addr"))
	mustBind(v, "static", flags.Lookup("static"))
	mustBind(v, "login_delay", flags.Lookup("login-delay"))
	mustBind(v, "login_rate", flags.Lookup("login-rate"))
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger()
	logger.Info("taskboard starting", slog.String("version", Version), slog.String("db", cfg.DBPath))

	a, store, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(a, logger, server.Options{StaticDir: cfg.StaticDir, LoginRate: cfg.LoginRate})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}
