package slot

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/spf13/cobra"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your slots",
	Long: `List your slots ordered by start time.

Examples:
  slotswap slot list
  slotswap slot list --status swappable`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}

		query := queries.ListMySlotsQuery{OwnerID: callerID}
		if listStatus != "" {
			status, err := domain.ParseStatus(listStatus)
			if err != nil {
				return err
			}
			query.Status = &status
		}

		slots, err := app.ListMySlotsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list slots: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(slots) == 0 {
			fmt.Fprintln(out, "No slots found.")
			return nil
		}

		fmt.Fprintf(out, "Slots (%d):\n", len(slots))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, s := range slots {
			printSlot(out, s)
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (busy, swappable, swap_pending)")
}
