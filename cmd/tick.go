package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/internal/scheduler"
)

var tickNow string

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run one status and reminder pass",
	Long: "Advance event statuses, archive events that ended 7 or more days ago and print " +
		"reminders whose window is open. Suitable for running from an external scheduler.",
	Args: cobra.NoArgs,
	RunE: runTick,
}

func init() {
	rootCmd.AddCommand(tickCmd)
	tickCmd.Flags().StringVar(&tickNow, "now", "", `Evaluate at this local time instead of now ("DD.MM.YYYY HH:MM")`)
}

// parseNow reads "DD.MM.YYYY HH:MM" (or an ISO date) as local time
func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	date, clock, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		clock = "00:00"
	}
	canonical, err := schedule.NormalizeDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	t, err := schedule.ParseInstant(canonical, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	return t, nil
}

func runTick(cmd *cobra.Command, args []string) error {
	now, err := parseNow(tickNow)
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	runner := scheduler.NewRunner(database, scheduler.NewWriterNotifier(out),
		scheduler.WithClock(func() time.Time { return now }))

	res, err := runner.RunOnce(cmd.Context())
	if err != nil {
		return err
	}
	runner.Wait()

	fmt.Fprintf(out, "Updated %d event(s), %d reminder(s), %d skipped\n", len(res.Updates), len(res.Notified), len(res.Errors))
	return nil
}
