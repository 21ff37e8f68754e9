package cli

import (
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin panel commands (require an admin session)",
	}

	cmd.AddCommand(newAdminStatsCmd())
	cmd.AddCommand(newAdminUsersCmd())
	cmd.AddCommand(newAdminEnergyCmd())
	cmd.AddCommand(newAdminInfiniteCmd())

	return cmd
}

func newAdminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate user and energy stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := adminClient.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(stats)
			return nil
		},
	}
}

func newAdminUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := adminClient.GetUsers(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(users)
			return nil
		},
	}
}

func newAdminEnergyCmd() *cobra.Command {
	var userID int64
	var amount int
	var txType string

	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Adjust a user's energy by a signed amount",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := adminClient.UpdateEnergyWithType(cmd.Context(), userID, amount, txType)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "Target user ID (required)")
	cmd.Flags().IntVar(&amount, "amount", 0, "Signed energy delta (required)")
	cmd.Flags().StringVar(&txType, "type", "admin_adjustment", "Transaction type")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newAdminInfiniteCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "infinite",
		Short: "Toggle a user's infinite energy flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := adminClient.ToggleInfiniteEnergy(cmd.Context(), userID)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "Target user ID (required)")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
