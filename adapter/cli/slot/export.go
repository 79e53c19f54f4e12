package slot

import (
	"fmt"
	"io"
	"os"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	"github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your slots as iCalendar",
	Long: `Export your slots to ICS (iCalendar) format for import into
Google Calendar, Outlook, Apple Calendar, and other calendar apps.

Examples:
  slotswap slot export              # Export to stdout
  slotswap slot export -o slots.ics # Export to file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		callerID, err := cli.CallerID()
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := app.ExportCalendarHandler.Handle(cmd.Context(), queries.ExportCalendarQuery{OwnerID: callerID}, w); err != nil {
			return fmt.Errorf("failed to export slots: %w", err)
		}

		if exportOutput != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
}
