package report

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

const productID = "-//grafik//Schedule//RU"

// ICS renders events as an iCalendar document. Events whose date or times do
// not parse are skipped and reported; the rest are still exported.
func ICS(events []models.Event, registry *schedule.Registry, dateLabel string, now time.Time) (string, []error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(Title(dateLabel))

	var errs []error
	for _, e := range events {
		start, end, err := schedule.Bounds(e, now.Location())
		if err != nil {
			errs = append(errs, err)
			continue
		}

		evt := cal.AddEvent(fmt.Sprintf("grafik-event-%d", e.ID))
		evt.SetDtStampTime(now)
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(e.Title)
		if place := e.Place().Text(); place != "" {
			evt.SetLocation(place)
		}
		if p, ok := e.Place().(models.VideoCall); ok && p.Link != "" {
			evt.SetURL(p.Link)
		}
		evt.SetDescription(describe(e, registry))
		evt.SetStatus(icsStatus(e.Status))

		if e.HasReminder() {
			alarm := evt.AddAlarm()
			alarm.SetAction(ical.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", e.ReminderMinutes))
			n := schedule.BuildNotification(e)
			alarm.SetProperty(ical.ComponentPropertyDescription, n.Title)
		}
	}

	return cal.Serialize(), errs
}

func describe(e models.Event, registry *schedule.Registry) string {
	lines := []string{
		"Тип: " + e.Type.Label(),
		"Ответственный: " + registry.ResponsibleName(e),
		"Статус: " + e.Status.Label(),
	}
	if e.Description != "" {
		lines = append(lines, e.Description)
	}
	return strings.Join(lines, "\n")
}

func icsStatus(s models.Status) ical.ObjectStatus {
	switch s {
	case models.StatusCancelled:
		return ical.ObjectStatusCancelled
	case models.StatusScheduled:
		return ical.ObjectStatusTentative
	default:
		return ical.ObjectStatusConfirmed
	}
}
