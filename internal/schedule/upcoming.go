package schedule

import (
	"sort"

	"github.com/chris/grafik/pkg/models"
)

// DefaultUpcomingLimit is how many reminders the upcoming panel shows
const DefaultUpcomingLimit = 5

// Upcoming returns up to limit active scheduled events with a reminder,
// ordered by date only. Events on the same day keep their input order.
// A limit <= 0 means DefaultUpcomingLimit.
func Upcoming(events []models.Event, limit int) []models.Event {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	type dated struct {
		event models.Event
		unix  int64
		valid bool
	}
	candidates := make([]dated, 0, len(events))
	for _, e := range events {
		if !e.Reminder || e.Status != models.StatusScheduled || e.Archived {
			continue
		}
		t, err := ParseDate(e.Date)
		candidates = append(candidates, dated{event: e, unix: t.Unix(), valid: err == nil})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.valid != b.valid {
			return a.valid
		}
		return a.unix < b.unix
	})

	out := make([]models.Event, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, c.event)
	}
	return out
}
