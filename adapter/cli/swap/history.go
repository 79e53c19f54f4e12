package swap

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/swaps/application/queries"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/spf13/cobra"
)

var (
	historyOutgoing bool
	historyStatus   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List every swap request you took part in",
	Long: `List swap requests in any status. Incoming by default.

Examples:
  slotswap swap history --status ACCEPTED
  slotswap swap history --outgoing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}

		query := queries.RequestHistoryQuery{CallerID: callerID, Direction: queries.DirectionIncoming}
		if historyOutgoing {
			query.Direction = queries.DirectionOutgoing
		}
		if historyStatus != "" {
			status, err := domain.ParseRequestStatus(strings.ToUpper(historyStatus))
			if err != nil {
				return err
			}
			query.Status = &status
		}

		requests, err := app.RequestHistoryHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list swap history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(requests) == 0 {
			fmt.Fprintln(out, "No swap requests found.")
			return nil
		}

		fmt.Fprintf(out, "Swap requests, %s (%d):\n", query.Direction, len(requests))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, r := range requests {
			fmt.Fprintf(out, "%s %s %s  %s\n", statusBadge(r.Status), r.ID, r.Status, r.CreatedAt.UTC().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyOutgoing, "outgoing", false, "list requests you proposed instead of received")
	historyCmd.Flags().StringVarP(&historyStatus, "status", "s", "", "filter incoming requests by status (pending, accepted, rejected)")
}
