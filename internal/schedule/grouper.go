package schedule

import (
	"sort"

	"github.com/chris/grafik/pkg/models"
)

// Grouped holds events bucketed by their raw date string
type Grouped struct {
	Buckets map[string][]models.Event
}

// Day is one date bucket ready for display
type Day struct {
	Date   string
	Header string
	Events []models.Event
}

// Group buckets events by date and orders each bucket by start time.
// Events with equal start times keep their input order.
func Group(events []models.Event) *Grouped {
	grouped := &Grouped{
		Buckets: make(map[string][]models.Event),
	}

	for _, e := range events {
		grouped.Buckets[e.Date] = append(grouped.Buckets[e.Date], e)
	}

	for date := range grouped.Buckets {
		SortByStart(grouped.Buckets[date])
	}

	return grouped
}

// SortedKeys returns bucket dates in calendar order. Comparison is by date
// value, so 9.1.2025 comes before 10.1.2025. Keys that do not parse go last
// in string order.
func (g *Grouped) SortedKeys() []string {
	keys := make([]string, 0, len(g.Buckets))
	for k := range g.Buckets {
		keys = append(keys, k)
	}
	SortDates(keys)
	return keys
}

// Days returns the buckets in calendar order with their headers
func (g *Grouped) Days() []Day {
	keys := g.SortedKeys()
	days := make([]Day, 0, len(keys))
	for _, k := range keys {
		header, err := FormatHeader(k)
		if err != nil {
			header = k
		}
		days = append(days, Day{Date: k, Header: header, Events: g.Buckets[k]})
	}
	return days
}

// Ordered flattens the buckets into one list, day by day
func (g *Grouped) Ordered() []models.Event {
	var events []models.Event
	for _, k := range g.SortedKeys() {
		events = append(events, g.Buckets[k]...)
	}
	return events
}

// SortDates orders DD.MM.YYYY strings chronologically in place
func SortDates(dates []string) {
	type keyed struct {
		raw   string
		unix  int64
		valid bool
	}
	items := make([]keyed, len(dates))
	for i, d := range dates {
		t, err := ParseDate(d)
		items[i] = keyed{raw: d, unix: t.Unix(), valid: err == nil}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.valid != b.valid {
			return a.valid
		}
		if !a.valid {
			return a.raw < b.raw
		}
		if a.unix != b.unix {
			return a.unix < b.unix
		}
		return a.raw < b.raw
	})
	for i := range items {
		dates[i] = items[i].raw
	}
}

// SortByStart stably orders events by start time as minutes since midnight.
// Events with an unreadable start go after the rest.
func SortByStart(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return startMinutes(events[i]) < startMinutes(events[j])
	})
}

func startMinutes(e models.Event) int {
	m, err := ParseClock(e.TimeStart)
	if err != nil {
		return 24 * 60
	}
	return m
}
