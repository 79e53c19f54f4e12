package slot

import (
	"fmt"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/slots/application/commands"
	"github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	updateTitle  string
	updateStart  string
	updateEnd    string
	updateStatus string
)

var updateCmd = &cobra.Command{
	Use:   "update [slot-id]",
	Short: "Edit one of your slots",
	Long: `Edit the fields you pass; everything else stays as it is.
A slot held by a pending swap cannot be edited.

Examples:
  slotswap slot update 3f2a... --status swappable
  slotswap slot update 3f2a... --title "1:1 with Sam" --end "2026-03-02 10:00"`,
	Args: cobra.ExactArgs(1),
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

		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update: pass --title, --start, --end or --status")
		}

		slot, err := app.UpdateSlotHandler.Handle(cmd.Context(), commands.UpdateSlotCommand{
			SlotID:   slotID,
			CallerID: callerID,
			Patch:    patch,
		})
		if err != nil {
			return fmt.Errorf("failed to update slot: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Slot updated:")
		printSlot(out, queries.ToSlotDTO(slot))
		return nil
	},
}

// patchFromFlags sets only the fields whose flags were given.
func patchFromFlags(cmd *cobra.Command) (domain.Patch, error) {
	var patch domain.Patch
	flags := cmd.Flags()

	if flags.Changed("title") {
		title := updateTitle
		patch.Title = &title
	}
	if flags.Changed("start") {
		start, err := cli.ParseTime(updateStart)
		if err != nil {
			return patch, fmt.Errorf("--start: %w", err)
		}
		patch.Start = &start
	}
	if flags.Changed("end") {
		end, err := cli.ParseTime(updateEnd)
		if err != nil {
			return patch, fmt.Errorf("--end: %w", err)
		}
		patch.End = &end
	}
	if flags.Changed("status") {
		status, err := domain.ParseStatus(updateStatus)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	return patch, nil
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateStart, "start", "", "new start time")
	updateCmd.Flags().StringVar(&updateEnd, "end", "", "new end time")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "busy or swappable")
}
