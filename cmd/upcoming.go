package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/schedule"
)

var upcomingLimit int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List the next events with reminders",
	Long:  "Show scheduled, non-archived events that have a reminder, earliest date first",
	Args:  cobra.NoArgs,
	RunE:  runUpcoming,
}

func init() {
	rootCmd.AddCommand(upcomingCmd)
	upcomingCmd.Flags().IntVarP(&upcomingLimit, "limit", "n", 0, "Maximum number of events (default: upcoming_limit from config)")
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	events, err := database.ListEvents(cmd.Context())
	if err != nil {
		return err
	}

	limit := upcomingLimit
	if limit <= 0 {
		limit = appConfig.UpcomingLimit
	}

	out := cmd.OutOrStdout()
	upcoming := schedule.Upcoming(events, limit)
	if len(upcoming) == 0 {
		fmt.Fprintln(out, "Нет предстоящих напоминаний.")
		return nil
	}
	for _, e := range upcoming {
		fmt.Fprintf(out, "%s %s  %s (за %d мин)\n", e.Date, e.TimeStart, e.Title, e.ReminderMinutes)
	}
	return nil
}
