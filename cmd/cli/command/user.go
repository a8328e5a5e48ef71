package command

import (
	"errors"
	"fmt"
	"time"

	"videohub/internal/microservices/http-api/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
)

var userCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "User administration commands",
}

var promoteCmd = &cobra.Command{
	Use:   "promote [username]",
	Short: "Give an existing user the admin role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		user, err := current.auth.PromoteToAdmin(ctx, args[0])
		if errors.Is(err, service.ErrUserNotFound) {
			return fmt.Errorf("no user named %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to promote user: %w", err)
		}

		success.Fprintf(out(cmd), "✓ %s is now an admin (id %s)\n", user.Username, user.ID)
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a new admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		email, _ := cmd.Flags().GetString("email")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		user, err := current.auth.CreateAdmin(ctx, username, password, email)
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		success.Fprintf(out(cmd), "✓ Admin %s created (id %s)\n", user.Username, user.ID)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Refresh token maintenance",
}

var purgeTokensCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired and revoked refresh tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		n, err := current.tokens.DeleteExpired(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to purge tokens: %w", err)
		}
		fmt.Fprintf(out(cmd), "Removed %d refresh tokens.\n", n)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().String("username", "", "admin username")
	createAdminCmd.Flags().String("password", "", "admin password (min 8 characters)")
	createAdminCmd.Flags().String("email", "", "admin email")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
	_ = createAdminCmd.MarkFlagRequired("email")

	userCmd.AddCommand(promoteCmd)
	userCmd.AddCommand(createAdminCmd)
	tokenCmd.AddCommand(purgeTokensCmd)
}
