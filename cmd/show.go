package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/report"
	"github.com/chris/grafik/internal/schedule"
)

var showCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show every field of an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseEventID(args[0])
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	e, err := database.GetEvent(cmd.Context(), id)
	if err != nil {
		return err
	}
	persons, err := database.ListPersons(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, report.FormatDetail(*e, schedule.NewRegistry(persons), report.FormatOptions{NoColor: colorDisabled(out)}))
	return nil
}
