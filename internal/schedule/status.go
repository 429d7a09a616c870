package schedule

import (
	"fmt"
	"time"

	"github.com/chris/grafik/pkg/models"
)

// ArchiveAfter is how long after its end a completed event moves to the archive
const ArchiveAfter = 7 * 24 * time.Hour

const day = 24 * time.Hour

// Lifecycle is the part of an event the automatic engine may change
type Lifecycle struct {
	Status   models.Status
	Archived bool
}

// LifecycleOf returns the current lifecycle fields of e
func LifecycleOf(e models.Event) Lifecycle {
	return Lifecycle{Status: e.Status, Archived: e.Archived}
}

// Changed reports whether l differs from what e currently holds
func (l Lifecycle) Changed(e models.Event) bool {
	return l != LifecycleOf(e)
}

// Advance computes the lifecycle e should have at now. It never touches
// archived or cancelled events. Completion wins over in-progress, so an event
// whose end has passed is never marked as running. Both bounds are inclusive
// on the left: in-progress starts exactly at start, completion exactly at end.
func Advance(e models.Event, now time.Time) (Lifecycle, error) {
	current := LifecycleOf(e)
	if e.Archived || e.Status == models.StatusCancelled {
		return current, nil
	}

	start, end, err := Bounds(e, now.Location())
	if err != nil {
		return current, err
	}

	next := current
	switch {
	case !now.Before(end):
		next.Status = models.StatusCompleted
		// Whole days since the end, so 6d23h59m is still active
		if !e.ArchiveHold && now.Sub(end)/day >= ArchiveAfter/day {
			next.Archived = true
		}
	case !now.Before(start) && e.Status == models.StatusScheduled:
		next.Status = models.StatusInProgress
	}
	return next, nil
}

// Bounds returns the start and end instants of e in loc
func Bounds(e models.Event, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseInstantIn(e.Date, e.TimeStart, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event %d start: %w", e.ID, err)
	}
	end, err := ParseInstantIn(e.Date, e.TimeEnd, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event %d end: %w", e.ID, err)
	}
	return start, end, nil
}

// Cancel moves a scheduled or running event to cancelled. This is a user
// action; the automatic engine never cancels.
func Cancel(e *models.Event) error {
	switch e.Status {
	case models.StatusScheduled, models.StatusInProgress:
		e.Status = models.StatusCancelled
		return nil
	default:
		return fmt.Errorf("%w: cannot cancel a %s event", ErrInvalidTransition, e.Status)
	}
}

// Archive moves e to the archive on user request
func Archive(e *models.Event) {
	e.Archived = true
	e.ArchiveHold = false
}

// Unarchive brings e back to the active list and keeps auto-archival from
// moving it again
func Unarchive(e *models.Event) {
	e.Archived = false
	e.ArchiveHold = true
}
