package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/report"
)

var (
	printDate     string
	printArchived bool
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Send the schedule report to the printer",
	Long:  "Render the text report and pipe it into print_command from the config (default: lp)",
	Args:  cobra.NoArgs,
	RunE:  runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().StringVar(&printDate, "date", "", "Only events on this day (DD.MM.YYYY or YYYY-MM-DD)")
	printCmd.Flags().BoolVar(&printArchived, "archived", false, "Print archived events instead of active ones")
}

func runPrint(cmd *cobra.Command, args []string) error {
	in, err := loadReport(cmd.Context(), printDate, printArchived)
	if err != nil {
		return err
	}

	doc := report.Build(in.events, in.registry, in.dateLabel, time.Now())
	content := report.FormatTable(doc, report.FormatOptions{NoColor: true})
	if err := report.Print(cmd.Context(), appConfig.PrintCommand, content); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sent %d event(s) to %s\n", len(doc.Rows), appConfig.PrintCommand[0])
	return nil
}
