package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/report"
	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

var (
	listSearch   string
	listType     string
	listStatus   string
	listArchived bool
	listDate     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events grouped by day",
	Long:  "Display the schedule grouped by day in calendar order, events within a day by start time",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive text in title, location or description")
	listCmd.Flags().StringVar(&listType, "type", schedule.FilterAll, "Only events of this type (or all)")
	listCmd.Flags().StringVar(&listStatus, "status", schedule.FilterAll, "Only events with this status (or all)")
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "Show the archive instead of active events")
	listCmd.Flags().StringVar(&listDate, "date", "", "Only events on this day (DD.MM.YYYY or YYYY-MM-DD)")
}

// listQuery builds the view query from the list-style flags
func listQuery(search, eventType, status string, archived bool) (schedule.Query, error) {
	if eventType != schedule.FilterAll && !models.EventType(eventType).Valid() {
		return schedule.Query{}, fmt.Errorf("%w: %q", schedule.ErrUnknownType, eventType)
	}
	if status != schedule.FilterAll && !models.Status(status).Valid() {
		return schedule.Query{}, fmt.Errorf("%w: %q", schedule.ErrUnknownStatus, status)
	}
	return schedule.Query{Text: search, Type: eventType, Status: status, Archived: archived}, nil
}

// onDate keeps the events of one day; an empty date keeps everything
func onDate(events []models.Event, date string) ([]models.Event, string, error) {
	if date == "" {
		return events, "", nil
	}
	canonical, err := schedule.NormalizeDate(date)
	if err != nil {
		return nil, "", fmt.Errorf("--date: %w", err)
	}
	var out []models.Event
	for _, e := range events {
		if e.Date == canonical {
			out = append(out, e)
		}
	}
	return out, canonical, nil
}

func runList(cmd *cobra.Command, args []string) error {
	q, err := listQuery(listSearch, listType, listStatus, listArchived)
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	events, err := database.ListEvents(cmd.Context())
	if err != nil {
		return err
	}
	persons, err := database.ListPersons(cmd.Context())
	if err != nil {
		return err
	}

	events, _, err = onDate(schedule.Filter(events, q), listDate)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	days := schedule.Group(events).Days()
	fmt.Fprint(out, report.FormatAgenda(days, schedule.NewRegistry(persons), report.FormatOptions{NoColor: colorDisabled(out)}))
	return nil
}
