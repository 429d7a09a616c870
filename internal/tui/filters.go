package tui

import (
	"fmt"
	"slices"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

// typeFilters is the cycle order of the type filter: all, then every type
func typeFilters() []string {
	out := []string{schedule.FilterAll}
	for _, t := range models.AllEventTypes {
		out = append(out, string(t))
	}
	return out
}

// statusFilters is the cycle order of the status filter
func statusFilters() []string {
	out := []string{schedule.FilterAll}
	for _, s := range models.AllStatuses {
		out = append(out, string(s))
	}
	return out
}

// nextFilter returns the value after current in cycle, wrapping around.
// An unknown current restarts the cycle.
func nextFilter(current string, cycle []string) string {
	i := slices.Index(cycle, current)
	return cycle[(i+1)%len(cycle)]
}

// filterLabel renders a filter value for the header
func filterLabel(value string, label func(string) string) string {
	if value == "" || value == schedule.FilterAll {
		return "все"
	}
	return label(value)
}

// yankText is what "y" copies: the call link for video calls, a one-line
// summary otherwise
func yankText(e models.Event) string {
	if call, ok := e.Place().(models.VideoCall); ok && call.Link != "" {
		return call.Link
	}
	return fmt.Sprintf("%s %s-%s %s", e.Date, e.TimeStart, e.TimeEnd, e.Title)
}
