package user

import (
	"fmt"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user commands act as",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}

		u, err := app.GetUserHandler.Handle(cmd.Context(), callerID)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", callerID, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n%s\n", u.Name, u.Email, u.ID)
		return nil
	},
}
