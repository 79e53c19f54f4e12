package swap

import (
	"fmt"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/swaps/application/commands"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept [request-id]",
	Short: "Accept a swap proposed to you",
	Long: `Accept a pending swap. The two slots change owners and both become BUSY.
Other pending proposals involving either slot are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return respond(cmd, args[0], domain.DecisionAccept)
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject [request-id]",
	Short: "Reject a swap proposed to you",
	Long:  `Reject a pending swap. Both slots go back on the marketplace.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return respond(cmd, args[0], domain.DecisionReject)
	},
}

func respond(cmd *cobra.Command, rawID string, decision domain.Decision) error {
	app, err := cli.RequireApp()
	if err != nil {
		return err
	}
	callerID, err := cli.CallerID()
	if err != nil {
		return err
	}
	requestID, err := parseID("request", rawID)
	if err != nil {
		return err
	}

	result, err := app.RespondToSwapHandler.Handle(cmd.Context(), commands.RespondToSwapCommand{
		CallerID:  callerID,
		RequestID: requestID,
		Decision:  decision,
	})
	if err != nil {
		return fmt.Errorf("failed to %s swap: %w", decision, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Swap %s: %s\n", result.Request.Status(), result.Request.ID())
	if decision == domain.DecisionAccept {
		fmt.Fprintf(out, "  you now own: %s (%s)\n", result.RequesterSlot.Title(),
			cli.FormatRange(result.RequesterSlot.Start(), result.RequesterSlot.End()))
		if result.Cascaded > 0 {
			fmt.Fprintf(out, "  %d other pending request(s) were rejected\n", result.Cascaded)
		}
	}
	return nil
}
