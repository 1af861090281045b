package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
)

// importCmd adds a GitHub repository as a project without going through the
// web client.
func importCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "import OWNER/REPO",
		Short: "Import a GitHub repository as a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, ok := strings.Cut(args[0], "/")
			if !ok || owner == "" || repo == "" {
				return fmt.Errorf("expected OWNER/REPO, got %q", args[0])
			}
			cfg, err := load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, store, err := openApp(ctx, cfg, cfg.LoggerTo(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer store.Close()

			project, err := a.Importer.ImportByName(ctx, owner, repo)
			if err != nil {
				return fmt.Errorf("import %s/%s: %w", owner, repo, err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(project)
		},
	}
}

// notifyCmd sends one message with the saved Telegram credentials.
func notifyCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "notify TEXT...",
		Short: "Send a Telegram message through the connected bot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, store, err := openApp(ctx, cfg, cfg.LoggerTo(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer store.Close()

			if err := a.Notifier.Notify(ctx, strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sent")
			return nil
		},
	}
}
