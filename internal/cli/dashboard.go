package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/guard"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Verify the session and show the dashboard view",
		Long: `dashboard verifies the stored session and prints the user's view.
For admin users it also preloads the admin panel data (stats and the
user list). A stale or missing session exits with an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := guard.New(authClient, adminClient, nil)
			result := g.Run(cmd.Context())

			if result.State != guard.StateAuthenticated {
				return fmt.Errorf("not logged in")
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}

			out.Print(result.User)
			if result.AdminErr != nil {
				out.PrintError(fmt.Errorf("admin data unavailable: %w", result.AdminErr))
				return nil
			}
			if result.Stats != nil {
				fmt.Println()
				out.Print(result.Stats)
			}
			if result.Users != nil {
				fmt.Println()
				out.Print(result.Users)
			}
			return nil
		},
	}
}
