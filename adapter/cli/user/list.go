package user

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List users",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		users, err := app.ListUsersHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}

		fmt.Fprintf(out, "Users (%d):\n", len(users))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, u := range users {
			fmt.Fprintf(out, "%s  %s <%s>\n", u.ID, u.Name, u.Email)
		}
		return nil
	},
}
