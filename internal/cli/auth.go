package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/client"
)

func newRegisterCmd() *cobra.Command {
	var email, username, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirm == "" {
				confirm = password
			}

			if err := client.ValidateRegistration(password, confirm); err != nil {
				return err
			}

			result, err := authClient.Register(cmd.Context(), email, username, password)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&username, "user", "", "Username (required)")
	cmd.Flags().StringVar(&password, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password confirmation (defaults to --pass)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := authClient.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := authClient.Logout(cmd.Context()); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session's user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := authClient.Verify(cmd.Context())
			if user == nil {
				return fmt.Errorf("not logged in")
			}

			NewOutput(cfg.Output).Print(user)
			return nil
		},
	}
}

func newPasswdCmd() *cobra.Command {
	var email, oldPassword, newPassword string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change an account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := authClient.UpdatePassword(cmd.Context(), email, oldPassword, newPassword); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Password updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&oldPassword, "old", "", "Current password (required)")
	cmd.Flags().StringVar(&newPassword, "new", "", "New password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}
