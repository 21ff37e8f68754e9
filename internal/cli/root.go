package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/client"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/session"
)

var (
	cfg         *Config
	authClient  *client.AuthClient
	adminClient *client.AdminClient
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "poehali",
		Short: "CLI tool for the poehali auth and admin API",
		Long: `poehali is a CLI tool for interacting with the poehali JSON API.

It supports account management (register, login, logout, password changes)
and the admin panel operations (stats, user listing, energy management).
The session persists under the session directory between invocations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var logger *slog.Logger
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			store := session.NewFileStore(cfg.SessionDir)
			clientCfg := client.Config{
				AuthURL:  cfg.AuthURL(),
				AdminURL: cfg.AdminURL(),
				Logger:   logger,
			}
			authClient = client.NewAuthClient(clientCfg, store)
			adminClient = client.NewAdminClient(clientCfg, store)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: POEHALI_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AuthEndpoint, "auth-url", cfg.AuthEndpoint, "Auth endpoint override (env: POEHALI_AUTH_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminEndpoint, "admin-url", cfg.AdminEndpoint, "Admin endpoint override (env: POEHALI_ADMIN_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionDir, "session-dir", cfg.SessionDir, "Session directory (env: POEHALI_SESSION_DIR)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newPasswdCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
