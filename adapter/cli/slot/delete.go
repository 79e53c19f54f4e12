package slot

import (
	"fmt"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/slots/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [slot-id]",
	Short:   "Delete one of your slots",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}
		slotID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid slot id: %w", err)
		}

		if err := app.DeleteSlotHandler.Handle(cmd.Context(), commands.DeleteSlotCommand{
			SlotID:   slotID,
			CallerID: callerID,
		}); err != nil {
			return fmt.Errorf("failed to delete slot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Slot deleted: %s\n", slotID)
		return nil
	},
}
