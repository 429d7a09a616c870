package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.October, day, hour, minute, 0, 0, time.Local)
}

func session(id int64) models.Event {
	return models.Event{
		ID:        id,
		Date:      "02.10.2025",
		TimeStart: "10:00",
		TimeEnd:   "14:00",
		Title:     "Пленарное заседание",
		Type:      models.TypeSession,
		Location:  "Большой зал",
		Status:    models.StatusScheduled,
		Version:   3,
	}
}

func TestTick_ScenarioA_EmitsInProgressUpdate(t *testing.T) {
	// Given: a scheduled event and now inside it
	engine := NewEngine()

	// When: ticking at 11:00
	commands, errs := engine.Tick([]models.Event{session(1)}, at(2, 11, 0))

	// Then: one update carrying the snapshot version
	require.Empty(t, errs)
	require.Len(t, commands, 1)
	assert.Equal(t, Update{ID: 1, Version: 3, Status: models.StatusInProgress}, commands[0])
}

func TestTick_ScenarioB_CompletesAndArchives(t *testing.T) {
	engine := NewEngine()

	commands, errs := engine.Tick([]models.Event{session(1)}, at(10, 9, 0))

	require.Empty(t, errs)
	require.Len(t, commands, 1)
	assert.Equal(t, Update{ID: 1, Version: 3, Status: models.StatusCompleted, Archived: true}, commands[0])
}

func TestTick_NoUpdateWithoutChange(t *testing.T) {
	engine := NewEngine()
	running := session(1)
	running.Status = models.StatusInProgress

	commands, errs := engine.Tick([]models.Event{session(2), running}, at(2, 12, 0))

	require.Empty(t, errs)
	require.Len(t, commands, 1, "only the scheduled event changes")
	assert.Equal(t, int64(2), commands[0].(Update).ID)
}

func TestTick_IsolatesMalformedEvents(t *testing.T) {
	// Given: a broken event between two good ones
	engine := NewEngine()
	broken := session(2)
	broken.TimeEnd = "25:00"

	// When: ticking
	commands, errs := engine.Tick([]models.Event{session(1), broken, session(3)}, at(2, 11, 0))

	// Then: the broken one is reported and the others still advance
	require.Len(t, errs, 1)
	assert.Equal(t, int64(2), errs[0].ID)
	assert.ErrorIs(t, errs[0], schedule.ErrMalformedTime)

	var updated []int64
	for _, c := range commands {
		updated = append(updated, c.(Update).ID)
	}
	assert.Equal(t, []int64{1, 3}, updated)
}

func TestTick_NotifiesOncePerWindow(t *testing.T) {
	// Given: a 5 minute reminder ticked every minute
	engine := NewEngine()
	e := session(1)
	e.Reminder = true
	e.ReminderMinutes = 5

	var notified []Notify
	for minute := 50; minute < 60; minute++ {
		commands, errs := engine.Tick([]models.Event{e}, at(2, 9, minute))
		require.Empty(t, errs)
		for _, c := range commands {
			if n, ok := c.(Notify); ok {
				notified = append(notified, n)
			}
		}
	}

	// Then: a single notification with the reminder text
	require.Len(t, notified, 1)
	assert.Equal(t, int64(1), notified[0].EventID)
	assert.Equal(t, "Напоминание: Пленарное заседание", notified[0].Notification.Title)
	assert.Equal(t, 1, engine.Pending())

	// And: the notified entry is gone once the event starts
	commands, _ := engine.Tick([]models.Event{e}, at(2, 10, 0))
	require.Len(t, commands, 1)
	assert.IsType(t, Update{}, commands[0])
	assert.Equal(t, 0, engine.Pending())
}

func TestTick_DeletedEventsLeaveNotifiedSet(t *testing.T) {
	engine := NewEngine()
	e := session(1)
	e.Reminder = true
	e.ReminderMinutes = 15

	_, _ = engine.Tick([]models.Event{e}, at(2, 9, 50))
	require.Equal(t, 1, engine.Pending())

	_, _ = engine.Tick(nil, at(2, 9, 51))
	assert.Equal(t, 0, engine.Pending())
}
