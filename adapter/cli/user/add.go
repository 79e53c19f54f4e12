package user

import (
	"fmt"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/identity/application/commands"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [email] [name]",
	Short: "Add a user",
	Long: `Add a user to the directory. The printed id is what --as expects.

Examples:
  slotswap user add alice@example.com "Alice Doe"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.RegisterUserHandler.Handle(cmd.Context(), commands.RegisterUserCommand{
			Email: args[0],
			Name:  args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to add user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User added: %s\n", result.UserID)
		return nil
	},
}
