package schedule

import (
	"strings"

	"github.com/chris/grafik/pkg/models"
)

// FilterAll disables the type or status filter
const FilterAll = "all"

// Query selects the events of one view
type Query struct {
	Text     string // case-insensitive substring of title, location or description
	Type     string // FilterAll or an EventType
	Status   string // FilterAll or a Status
	Archived bool   // archive tab instead of the active list
}

// AllActive is the default view: every non-archived event
func AllActive() Query {
	return Query{Type: FilterAll, Status: FilterAll}
}

// Matches reports whether e belongs to the view described by q. The archive
// flag partitions events strictly, so active and archive views never overlap.
func Matches(e models.Event, q Query) bool {
	if e.Archived != q.Archived {
		return false
	}
	if !matchesFilter(q.Type, string(e.Type)) {
		return false
	}
	if !matchesFilter(q.Status, string(e.Status)) {
		return false
	}
	return matchesText(e, q.Text)
}

// Filter returns the events matching q in their original order
func Filter(events []models.Event, q Query) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if Matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

func matchesText(e models.Event, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	for _, field := range []string{e.Title, e.Location, e.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
