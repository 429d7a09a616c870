package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/grafik/pkg/models"
)

// plenary is the reference event: 02.10.2025 10:00-14:00
func plenary() models.Event {
	return models.Event{
		ID:        1,
		Date:      "02.10.2025",
		TimeStart: "10:00",
		TimeEnd:   "14:00",
		Title:     "Пленарное заседание",
		Type:      models.TypeSession,
		Location:  "Большой зал",
		Status:    models.StatusScheduled,
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.October, day, hour, minute, 0, 0, time.Local)
}

func TestAdvance_ScenarioA_InProgressDuringEvent(t *testing.T) {
	// Given: a scheduled event from 10:00 to 14:00
	e := plenary()

	// When: advancing at 11:00 the same day
	got, err := Advance(e, at(2, 11, 0))

	// Then: it is in progress and still active
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.False(t, got.Archived)
	assert.True(t, got.Changed(e))
}

func TestAdvance_ScenarioB_CompletedAndArchivedAfterAWeek(t *testing.T) {
	// Given: the same event
	e := plenary()

	// When: advancing eight days after it ended
	got, err := Advance(e, at(10, 9, 0))

	// Then: completion and archival apply in one tick
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.True(t, got.Archived)
}

func TestAdvance_BoundariesAreInclusive(t *testing.T) {
	e := plenary()

	got, err := Advance(e, at(2, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status, "in progress exactly at start")

	got, err = Advance(e, at(2, 14, 0))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status, "completed exactly at end")
	assert.False(t, got.Archived)

	got, err = Advance(e, at(2, 9, 59))
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, got.Status, "unchanged before start")
	assert.False(t, got.Changed(e))
}

func TestAdvance_CompletionWinsOverInProgress(t *testing.T) {
	// Given: a scheduled event whose end passed while nothing ran
	e := plenary()

	// When: advancing an hour after the end
	got, err := Advance(e, at(2, 15, 0))

	// Then: it goes straight to completed
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestAdvance_ArchivalNeedsSevenWholeDays(t *testing.T) {
	e := plenary()
	end := at(2, 14, 0)

	got, err := Advance(e, end.Add(ArchiveAfter-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.False(t, got.Archived, "six days 23:59 after the end is still active")

	got, err = Advance(e, end.Add(ArchiveAfter))
	require.NoError(t, err)
	assert.True(t, got.Archived, "exactly seven days after the end is archived")
}

func TestAdvance_ArchivesPreviouslyCompletedEvents(t *testing.T) {
	// Given: an event completed by an earlier tick
	e := plenary()
	e.Status = models.StatusCompleted

	// When: a tick runs once a week has passed
	got, err := Advance(e, at(9, 14, 0))

	// Then: it moves to the archive
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.True(t, got.Archived)
}

func TestAdvance_ArchiveHoldKeepsUnarchivedEventActive(t *testing.T) {
	// Given: an old archived event the user brought back
	e := plenary()
	e.Status = models.StatusCompleted
	e.Archived = true
	Unarchive(&e)

	// When: ticks keep running
	got, err := Advance(e, at(20, 9, 0))

	// Then: the engine does not archive it again
	require.NoError(t, err)
	assert.False(t, got.Archived)
	assert.False(t, got.Changed(e))
}

func TestAdvance_CancelledAndArchivedAreFixedPoints(t *testing.T) {
	cancelled := plenary()
	cancelled.Status = models.StatusCancelled

	archived := plenary()
	archived.Archived = true

	moments := []time.Time{at(1, 0, 0), at(2, 10, 0), at(2, 12, 0), at(2, 14, 0), at(30, 0, 0)}
	for _, e := range []models.Event{cancelled, archived} {
		for _, now := range moments {
			got, err := Advance(e, now)
			require.NoError(t, err)
			assert.Equal(t, LifecycleOf(e), got, "status %s archived %v at %s", e.Status, e.Archived, now)
		}
	}
}

func TestAdvance_Idempotent(t *testing.T) {
	moments := []time.Time{at(1, 0, 0), at(2, 10, 0), at(2, 13, 59), at(2, 14, 0), at(5, 0, 0), at(10, 9, 0)}
	for _, now := range moments {
		e := plenary()
		once, err := Advance(e, now)
		require.NoError(t, err)

		e.Status, e.Archived = once.Status, once.Archived
		twice, err := Advance(e, now)
		require.NoError(t, err)

		assert.Equal(t, once, twice, "at %s", now)
	}
}

func TestAdvance_InProgressNeverGoesBackToScheduled(t *testing.T) {
	// Given: an event already in progress, seen with a clock before its start
	e := plenary()
	e.Status = models.StatusInProgress

	// When: advancing
	got, err := Advance(e, at(2, 9, 0))

	// Then: the status is left alone
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
}

func TestAdvance_MalformedEventReportsError(t *testing.T) {
	e := plenary()
	e.TimeEnd = "25:00"

	got, err := Advance(e, at(2, 11, 0))

	assert.ErrorIs(t, err, ErrMalformedTime)
	assert.Equal(t, LifecycleOf(e), got)
}

func TestCancel_OnlyFromScheduledOrInProgress(t *testing.T) {
	for _, status := range []models.Status{models.StatusScheduled, models.StatusInProgress} {
		e := plenary()
		e.Status = status
		require.NoError(t, Cancel(&e))
		assert.Equal(t, models.StatusCancelled, e.Status)
	}

	for _, status := range []models.Status{models.StatusCompleted, models.StatusCancelled} {
		e := plenary()
		e.Status = status
		assert.ErrorIs(t, Cancel(&e), ErrInvalidTransition)
		assert.Equal(t, status, e.Status)
	}
}

func TestArchive_ClearsHold(t *testing.T) {
	e := plenary()
	Unarchive(&e)
	require.True(t, e.ArchiveHold)

	Archive(&e)

	assert.True(t, e.Archived)
	assert.False(t, e.ArchiveHold)
}
