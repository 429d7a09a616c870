package scheduler

import (
	"time"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

// Engine turns an event snapshot into the commands one tick produces. It owns
// the notified set, so a single Engine must serve every tick of a process.
type Engine struct {
	tracker *schedule.Tracker
}

// NewEngine creates an engine with an empty notified set
func NewEngine() *Engine {
	return &Engine{tracker: schedule.NewTracker()}
}

// Tick advances every event to now. An Update is emitted only when the
// lifecycle actually changes, and a Notify once per open reminder window.
// A malformed event is reported in the error list and skipped; the rest of
// the snapshot is still processed.
func (e *Engine) Tick(events []models.Event, now time.Time) ([]Command, []EventError) {
	var (
		commands []Command
		errs     []EventError
	)

	e.tracker.Retain(events)

	for _, ev := range events {
		next, err := schedule.Advance(ev, now)
		if err != nil {
			errs = append(errs, EventError{ID: ev.ID, Err: err})
			continue
		}
		if next.Changed(ev) {
			commands = append(commands, Update{
				ID:       ev.ID,
				Version:  ev.Version,
				Status:   next.Status,
				Archived: next.Archived,
			})
			ev.Status, ev.Archived = next.Status, next.Archived
		}

		fire, err := e.tracker.Check(ev, now)
		if err != nil {
			errs = append(errs, EventError{ID: ev.ID, Err: err})
			continue
		}
		if fire {
			commands = append(commands, Notify{
				EventID:      ev.ID,
				Notification: schedule.BuildNotification(ev),
			})
		}
	}

	return commands, errs
}

// Pending returns the number of reminders marked as already shown
func (e *Engine) Pending() int {
	return e.tracker.Len()
}
