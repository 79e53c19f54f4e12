package swap

import (
	"fmt"

	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Cmd is the swap command group
var Cmd = &cobra.Command{
	Use:   "swap",
	Short: "Negotiate slot swaps",
	Long: `Browse the marketplace, propose swaps and answer the swaps other
users propose to you.`,
}

func init() {
	Cmd.AddCommand(marketCmd)
	Cmd.AddCommand(proposeCmd)
	Cmd.AddCommand(acceptCmd)
	Cmd.AddCommand(rejectCmd)
	Cmd.AddCommand(incomingCmd)
	Cmd.AddCommand(outgoingCmd)
	Cmd.AddCommand(historyCmd)
}

func parseID(kind, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id: %w", kind, err)
	}
	return id, nil
}

func statusBadge(status string) string {
	switch domain.RequestStatus(status) {
	case domain.StatusAccepted:
		return "[x]"
	case domain.StatusRejected:
		return "[-]"
	default:
		return "[?]"
	}
}
