package swap

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:     "market",
	Short:   "List slots other users offer",
	Aliases: []string{"marketplace"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}

		slots, err := app.ListMarketplaceHandler.Handle(cmd.Context(), callerID)
		if err != nil {
			return fmt.Errorf("failed to list marketplace: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(slots) == 0 {
			fmt.Fprintln(out, "No swappable slots on the marketplace.")
			return nil
		}

		fmt.Fprintf(out, "Marketplace (%d):\n", len(slots))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, s := range slots {
			fmt.Fprintf(out, "%s (%s)\n", s.Title, s.OwnerName)
			fmt.Fprintf(out, "   ID:   %s\n", s.ID)
			fmt.Fprintf(out, "   When: %s\n", cli.FormatRange(s.StartTime, s.EndTime))
			fmt.Fprintln(out)
		}
		return nil
	},
}
