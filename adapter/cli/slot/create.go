package slot

import (
	"fmt"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/slots/application/commands"
	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/spf13/cobra"
)

var (
	createStart     string
	createEnd       string
	createSwappable bool
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a slot",
	Long: `Create a BUSY slot in your calendar.

Examples:
  slotswap slot create "Team standup" --start "2026-03-02 09:00" --end "2026-03-02 09:30"
  slotswap slot create "Gym" --start 2026-03-02T18:00:00+01:00 --end 2026-03-02T19:00:00+01:00 --swappable`,
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

		start, err := cli.ParseTime(createStart)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		end, err := cli.ParseTime(createEnd)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}

		ctx := cmd.Context()
		result, err := app.CreateSlotHandler.Handle(ctx, commands.CreateSlotCommand{
			OwnerID: callerID,
			Title:   args[0],
			Start:   start,
			End:     end,
		})
		if err != nil {
			return fmt.Errorf("failed to create slot: %w", err)
		}

		status := domain.StatusBusy
		if createSwappable {
			status = domain.StatusSwappable
			if _, err := app.UpdateSlotHandler.Handle(ctx, commands.UpdateSlotCommand{
				SlotID:   result.SlotID,
				CallerID: callerID,
				Patch:    domain.Patch{Status: &status},
			}); err != nil {
				return fmt.Errorf("slot %s created but not offered: %w", result.SlotID, err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Slot created: %s\n", result.SlotID)
		fmt.Fprintf(out, "  title:  %s\n", args[0])
		fmt.Fprintf(out, "  when:   %s\n", cli.FormatRange(start, end))
		fmt.Fprintf(out, "  status: %s\n", status)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createStart, "start", "", "start time (RFC 3339 or YYYY-MM-DD HH:MM UTC)")
	createCmd.Flags().StringVar(&createEnd, "end", "", "end time (RFC 3339 or YYYY-MM-DD HH:MM UTC)")
	createCmd.Flags().BoolVar(&createSwappable, "swappable", false, "offer the slot on the marketplace right away")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("end")
}
