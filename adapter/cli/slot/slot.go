package slot

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	"github.com/spf13/cobra"
)

// Cmd is the slot command group
var Cmd = &cobra.Command{
	Use:   "slot",
	Short: "Manage your calendar slots",
	Long:  `Create, list, edit, delete and export your calendar slots.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(exportCmd)
}

func printSlot(out io.Writer, s queries.SlotDTO) {
	fmt.Fprintf(out, "%s %s\n", statusBadge(s.Status), s.Title)
	fmt.Fprintf(out, "   ID:   %s\n", s.ID)
	fmt.Fprintf(out, "   When: %s\n", cli.FormatRange(s.StartTime, s.EndTime))
}

func statusBadge(status string) string {
	switch status {
	case "SWAPPABLE":
		return "[~]"
	case "SWAP_PENDING":
		return "[?]"
	default:
		return "[#]"
	}
}
