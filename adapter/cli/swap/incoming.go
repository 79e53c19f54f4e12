package swap

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/spf13/cobra"
)

var incomingCmd = &cobra.Command{
	Use:   "incoming",
	Short: "List pending swaps proposed to you",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}

		requests, err := app.ListIncomingHandler.Handle(cmd.Context(), callerID)
		if err != nil {
			return fmt.Errorf("failed to list incoming swaps: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(requests) == 0 {
			fmt.Fprintln(out, "No pending swaps for you.")
			return nil
		}

		fmt.Fprintf(out, "Incoming swaps (%d):\n", len(requests))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, r := range requests {
			fmt.Fprintf(out, "%s from %s\n", r.ID, r.RequesterName)
			fmt.Fprintf(out, "   offers: %s (%s)\n", r.TheirSlot.Title, cli.FormatRange(r.TheirSlot.StartTime, r.TheirSlot.EndTime))
			fmt.Fprintf(out, "   wants:  %s (%s)\n", r.MySlot.Title, cli.FormatRange(r.MySlot.StartTime, r.MySlot.EndTime))
			fmt.Fprintln(out)
		}
		return nil
	},
}
