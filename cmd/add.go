package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

var addFlags eventFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an event to the schedule",
	Long:  "Create a new event. New events always start in the scheduled state.",
	Example: `  grafik add --date 02.10.2025 --start 10:00 --end 14:00 --title "Пленарное заседание" --type session
  grafik add --date 2025-10-03 --start 09:00 --end 10:00 --title "Совещание" --type vcs --vcs-link https://vcs.example/7 --reminder 15`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addFlags.register(addCmd, false)
	for _, name := range []string{"date", "start", "end", "title"} {
		_ = addCmd.MarkFlagRequired(name)
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	e := models.NewEvent("", "", "", "", models.EventType(addFlags.eventType))
	if err := addFlags.apply(cmd, e); err != nil {
		return err
	}
	if err := schedule.Validate(*e); err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := database.CreateEvent(cmd.Context(), e)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Event created: %d\n", id)
	return nil
}
