package swap

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/spf13/cobra"
)

var outgoingCmd = &cobra.Command{
	Use:   "outgoing",
	Short: "List swaps you proposed",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}

		requests, err := app.ListOutgoingHandler.Handle(cmd.Context(), callerID)
		if err != nil {
			return fmt.Errorf("failed to list outgoing swaps: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(requests) == 0 {
			fmt.Fprintln(out, "You have not proposed any swaps.")
			return nil
		}

		fmt.Fprintf(out, "Outgoing swaps (%d):\n", len(requests))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, r := range requests {
			fmt.Fprintf(out, "%s %s to %s\n", statusBadge(r.Status), r.ID, r.ResponderName)
			fmt.Fprintf(out, "   give: %s\n", r.MySlot.Title)
			fmt.Fprintf(out, "   get:  %s (%s)\n", r.TheirSlot.Title, cli.FormatRange(r.TheirSlot.StartTime, r.TheirSlot.EndTime))
			fmt.Fprintln(out)
		}
		return nil
	},
}
