package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/chris/grafik/pkg/models"
)

// NotificationDuration is how long a reminder toast stays on screen
const NotificationDuration = 10 * time.Second

// Notification is the payload shown when a reminder fires
type Notification struct {
	Title        string
	Body         string
	DurationHint time.Duration
}

// ShouldFire reports whether e's reminder window is open at now: the event is
// scheduled, has a reminder and start-reminderMinutes <= now < start.
func ShouldFire(e models.Event, now time.Time) (bool, error) {
	if !e.HasReminder() || e.Status != models.StatusScheduled || e.Archived {
		return false, nil
	}
	start, err := ParseInstantIn(e.Date, e.TimeStart, now.Location())
	if err != nil {
		return false, fmt.Errorf("event %d start: %w", e.ID, err)
	}
	return reminderOpen(start, e.ReminderMinutes, now), nil
}

func reminderOpen(start time.Time, minutes int, now time.Time) bool {
	at := start.Add(-time.Duration(minutes) * time.Minute)
	return !now.Before(at) && now.Before(start)
}

// BuildNotification renders the reminder text for e
func BuildNotification(e models.Event) Notification {
	body := fmt.Sprintf("Начало в %s", e.TimeStart)
	if place := e.Place().Text(); place != "" {
		body += ", " + place
	}
	if e.ReminderMinutes > 0 {
		body += fmt.Sprintf(" (через %d мин)", e.ReminderMinutes)
	}
	return Notification{
		Title:        "Напоминание: " + e.Title,
		Body:         body,
		DurationHint: NotificationDuration,
	}
}

// Tracker remembers which reminders already fired so an open window notifies
// once instead of on every tick. An entry is keyed by event id and the start
// instant it fired for, so moving an event re-arms its reminder.
type Tracker struct {
	mu       sync.Mutex
	notified map[int64]time.Time
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{notified: make(map[int64]time.Time)}
}

// Check reports whether e should notify now and records it when it does.
// Entries are dropped once e leaves scheduled or its start has passed.
func (t *Tracker) Check(e models.Event, now time.Time) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !e.HasReminder() || e.Status != models.StatusScheduled || e.Archived {
		delete(t.notified, e.ID)
		return false, nil
	}
	start, err := ParseInstantIn(e.Date, e.TimeStart, now.Location())
	if err != nil {
		delete(t.notified, e.ID)
		return false, fmt.Errorf("event %d start: %w", e.ID, err)
	}
	if !now.Before(start) {
		delete(t.notified, e.ID)
		return false, nil
	}
	if !reminderOpen(start, e.ReminderMinutes, now) {
		return false, nil
	}
	if fired, ok := t.notified[e.ID]; ok && fired.Equal(start) {
		return false, nil
	}
	t.notified[e.ID] = start
	return true, nil
}

// Retain forgets every event not in live, e.g. after deletions
func (t *Tracker) Retain(live []models.Event) {
	keep := make(map[int64]struct{}, len(live))
	for _, e := range live {
		keep[e.ID] = struct{}{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.notified {
		if _, ok := keep[id]; !ok {
			delete(t.notified, id)
		}
	}
}

// Len returns the number of reminders currently marked as fired
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.notified)
}
