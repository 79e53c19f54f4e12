package swap

import (
	"fmt"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/swaps/application/commands"
	"github.com/spf13/cobra"
)

var proposeCmd = &cobra.Command{
	Use:   "propose [my-slot-id] [their-slot-id]",
	Short: "Offer one of your swappable slots for someone else's",
	Long: `Propose a swap. Both slots must be SWAPPABLE; they stay locked as
SWAP_PENDING until the other user accepts or rejects.

Examples:
  slotswap swap propose 3f2a... 9c41...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}
		mySlotID, err := parseID("slot", args[0])
		if err != nil {
			return err
		}
		theirSlotID, err := parseID("slot", args[1])
		if err != nil {
			return err
		}

		request, err := app.ProposeSwapHandler.Handle(cmd.Context(), commands.ProposeSwapCommand{
			CallerID:    callerID,
			MySlotID:    mySlotID,
			TheirSlotID: theirSlotID,
		})
		if err != nil {
			return fmt.Errorf("failed to propose swap: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Swap proposed: %s\n", request.ID())
		return nil
	},
}
