package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

// eventFlags holds the event fields settable from the command line
type eventFlags struct {
	date        string
	start       string
	end         string
	title       string
	eventType   string
	location    string
	description string
	status      string
	reminder    int
	vcsLink     string
	region      string
	responsible int64
}

func (f *eventFlags) register(cmd *cobra.Command, withStatus bool) {
	flags := cmd.Flags()
	flags.StringVar(&f.date, "date", "", "Event date (DD.MM.YYYY or YYYY-MM-DD)")
	flags.StringVar(&f.start, "start", "", "Start time (HH:MM)")
	flags.StringVar(&f.end, "end", "", "End time (HH:MM)")
	flags.StringVar(&f.title, "title", "", "Event title")
	flags.StringVar(&f.eventType, "type", string(models.TypeOther), "Event type (session, committee, meeting, visit, vcs, regional-trip, other)")
	flags.StringVar(&f.location, "location", "", "Venue")
	flags.StringVar(&f.description, "description", "", "Free-form notes")
	flags.IntVar(&f.reminder, "reminder", 0, "Reminder lead time in minutes (5, 15, 30, 60, 120; 0 disables)")
	flags.StringVar(&f.vcsLink, "vcs-link", "", "Video call link (vcs events)")
	flags.StringVar(&f.region, "region", "", "Region name (regional-trip events)")
	flags.Int64Var(&f.responsible, "responsible", 0, "Responsible person ID (0 clears)")
	if withStatus {
		flags.StringVar(&f.status, "status", "", "Event status (scheduled, in-progress, completed, cancelled)")
	}
}

// apply copies every flag the user set onto e
func (f *eventFlags) apply(cmd *cobra.Command, e *models.Event) error {
	var applyErr error
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		if applyErr != nil {
			return
		}
		switch flag.Name {
		case "date":
			date, err := schedule.NormalizeDate(f.date)
			if err != nil {
				applyErr = fmt.Errorf("--date: %w", err)
				return
			}
			e.Date = date
		case "start":
			e.TimeStart = f.start
		case "end":
			e.TimeEnd = f.end
		case "title":
			e.Title = f.title
		case "type":
			e.Type = models.EventType(f.eventType)
		case "location":
			e.Location = f.location
		case "description":
			e.Description = f.description
		case "status":
			e.Status = models.Status(f.status)
		case "reminder":
			e.Reminder = f.reminder > 0
			e.ReminderMinutes = max(f.reminder, 0)
		case "vcs-link":
			e.VCSLink = f.vcsLink
		case "region":
			e.RegionName = f.region
		case "responsible":
			if f.responsible <= 0 {
				e.ResponsiblePersonID = nil
				return
			}
			id := f.responsible
			e.ResponsiblePersonID = &id
		}
	})
	return applyErr
}
