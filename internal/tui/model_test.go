package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/grafik/internal/db"
	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

func init() {
	// Plain output keeps view assertions independent of the terminal
	lipgloss.SetColorProfile(termenv.Ascii)
}

// fixedTime returns a function that always returns the given time
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.October, day, hour, minute, 0, 0, time.Local)
}

// setupTestDB creates a test database with the given events
func setupTestDB(t *testing.T, events ...*models.Event) *db.DB {
	t.Helper()
	database, err := db.NewForTesting(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	for _, e := range events {
		_, err := database.CreateEvent(t.Context(), e)
		require.NoError(t, err)
	}
	return database
}

func event(date, start, end, title string, eventType models.EventType) *models.Event {
	return models.NewEvent(date, start, end, title, eventType)
}

func withReminder(e *models.Event, minutes int) *models.Event {
	e.Reminder, e.ReminderMinutes = true, minutes
	return e
}

// initModel creates a model and runs its first tick
func initModel(t *testing.T, store db.Store, now time.Time) *Model {
	t.Helper()
	model := New(store, WithNow(fixedTime(now)))
	model.Update(model.runTick())
	return model
}

// press simulates a key press and runs the resulting commands to completion
func press(model *Model, msg tea.KeyMsg) {
	_, cmd := model.Update(msg)
	for range 5 {
		if cmd == nil {
			return
		}
		_, cmd = model.Update(cmd())
	}
}

func pressRune(model *Model, key rune) {
	press(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
}

func pressType(model *Model, text string) {
	for _, r := range text {
		pressRune(model, r)
	}
}

func titles(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func TestLaunch_ShowsDaysInCalendarOrder(t *testing.T) {
	// Given: events over two days, stored out of order
	database := setupTestDB(t,
		event("03.10.2025", "09:00", "10:00", "Комитет по бюджету", models.TypeCommittee),
		event("02.10.2025", "14:00", "15:00", "Встреча с избирателями", models.TypeMeeting),
		event("02.10.2025", "10:00", "12:00", "Пленарное заседание", models.TypeSession),
	)

	// When: the agenda opens the day before
	model := initModel(t, database, at(1, 12, 0))

	// Then: days come in calendar order with their headers
	require.Len(t, model.Days(), 2)
	assert.Equal(t, "Четверг, 2 октября 2025", model.Days()[0].Header)
	assert.Equal(t, []string{"Пленарное заседание", "Встреча с избирателями", "Комитет по бюджету"}, titles(model.Visible()))

	view := model.View()
	assert.Contains(t, view, "График работы")
	assert.Contains(t, view, "Активные")
	assert.Contains(t, view, "Пятница, 3 октября 2025")
	assert.Contains(t, view, "▶ 10:00-12:00  Пленарное заседание [Заседание]")
	assert.Equal(t, ActiveView, model.ViewState())
}

func TestLaunch_Empty(t *testing.T) {
	model := initModel(t, setupTestDB(t), at(1, 12, 0))

	assert.Contains(t, model.View(), "Нет мероприятий")
	_, ok := model.Selected()
	assert.False(t, ok)
}

func TestNavigate_StaysInBounds(t *testing.T) {
	database := setupTestDB(t,
		event("02.10.2025", "10:00", "11:00", "Первое", models.TypeOther),
		event("02.10.2025", "12:00", "13:00", "Второе", models.TypeOther),
	)
	model := initModel(t, database, at(1, 12, 0))

	pressRune(model, 'k')
	assert.Equal(t, 0, model.SelectedIdx())

	pressRune(model, 'j')
	pressRune(model, 'j')
	assert.Equal(t, 1, model.SelectedIdx())
	selected, ok := model.Selected()
	require.True(t, ok)
	assert.Equal(t, "Второе", selected.Title)

	press(model, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, model.SelectedIdx())
}

func TestTick_AdvancesRunningEvent(t *testing.T) {
	// Given: a session that started an hour ago
	database := setupTestDB(t, event("02.10.2025", "10:00", "14:00", "Пленарное заседание", models.TypeSession))

	// When: the agenda ticks
	model := initModel(t, database, at(2, 11, 0))

	// Then: the store and the view both show it running
	stored, err := database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, stored.Status)
	assert.Equal(t, models.StatusInProgress, model.Visible()[0].Status)
	assert.Contains(t, model.View(), "Идёт сейчас")
}

func TestTick_ArchivesOldEvents(t *testing.T) {
	database := setupTestDB(t,
		event("20.09.2025", "10:00", "11:00", "Прошлое совещание", models.TypeMeeting),
		event("03.10.2025", "10:00", "11:00", "Будущее совещание", models.TypeMeeting),
	)

	model := initModel(t, database, at(2, 12, 0))

	assert.Equal(t, []string{"Будущее совещание"}, titles(model.Visible()))

	press(model, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ArchiveView, model.ViewState())
	assert.Equal(t, []string{"Прошлое совещание"}, titles(model.Visible()))
	assert.Equal(t, models.StatusCompleted, model.Visible()[0].Status)
	assert.Contains(t, model.View(), "Архив")
}

func TestTick_NotifiesOncePerWindow(t *testing.T) {
	// Given: a meeting at noon with a 30 minute reminder
	database := setupTestDB(t, withReminder(event("02.10.2025", "12:00", "13:00", "Встреча", models.TypeMeeting), 30))
	model := New(database, WithNow(fixedTime(at(2, 11, 45))))

	// When: two ticks land inside the window
	model.Update(model.runTick())
	model.Update(model.runTick())

	// Then: the reminder shows once
	require.Len(t, model.Notifications(), 1)
	assert.Equal(t, "Напоминание: Встреча", model.Notifications()[0].Title)
	assert.Contains(t, model.View(), "Напоминание: Встреча")

	pressRune(model, 'n')
	assert.Empty(t, model.Notifications())
}

func TestTickMsg_SchedulesWork(t *testing.T) {
	model := New(setupTestDB(t), WithNow(fixedTime(at(2, 11, 45))))

	_, cmd := model.Update(tickMsg(at(2, 11, 45)))

	assert.NotNil(t, cmd)
}

func TestUpcomingFooter(t *testing.T) {
	database := setupTestDB(t,
		withReminder(event("05.10.2025", "10:00", "11:00", "Позже", models.TypeMeeting), 15),
		withReminder(event("03.10.2025", "09:00", "10:00", "Раньше", models.TypeMeeting), 60),
		event("04.10.2025", "09:00", "10:00", "Без напоминания", models.TypeMeeting),
	)

	model := initModel(t, database, at(1, 12, 0))

	assert.Equal(t, []string{"Раньше", "Позже"}, titles(model.Upcoming()))
	view := model.View()
	assert.Contains(t, view, "Ближайшие напоминания:")
	assert.Contains(t, view, "03.10.2025 09:00  Раньше (за 60 мин)")
}

func TestSearch_FiltersByText(t *testing.T) {
	database := setupTestDB(t,
		event("02.10.2025", "10:00", "11:00", "Комитет по обороне", models.TypeCommittee),
		event("02.10.2025", "12:00", "13:00", "Встреча", models.TypeMeeting),
	)
	model := initModel(t, database, at(1, 12, 0))

	// When: the user searches for "оборон"
	pressRune(model, '/')
	require.True(t, model.Searching())
	pressType(model, "ОБОРОН")
	assert.Contains(t, model.View(), "/ОБОРОН")
	press(model, tea.KeyMsg{Type: tea.KeyBackspace})
	press(model, tea.KeyMsg{Type: tea.KeyEnter})

	// Then: the match is case-insensitive
	assert.False(t, model.Searching())
	assert.Equal(t, "ОБОРО", model.Query().Text)
	assert.Equal(t, []string{"Комитет по обороне"}, titles(model.Visible()))

	// And: esc clears the search
	press(model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, model.Visible(), 2)
}

func TestSearch_EscDiscardsInput(t *testing.T) {
	model := initModel(t, setupTestDB(t), at(1, 12, 0))

	pressRune(model, '/')
	pressType(model, "abc")
	press(model, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, model.Searching())
	assert.Empty(t, model.Query().Text)
}

func TestFilters_CycleTypeAndStatus(t *testing.T) {
	database := setupTestDB(t,
		event("02.10.2025", "10:00", "11:00", "Заседание", models.TypeSession),
		event("02.10.2025", "12:00", "13:00", "Комитет", models.TypeCommittee),
	)
	model := initModel(t, database, at(1, 12, 0))

	pressRune(model, 't')
	assert.Equal(t, string(models.TypeSession), model.Query().Type)
	assert.Equal(t, []string{"Заседание"}, titles(model.Visible()))
	assert.Contains(t, model.View(), "тип: Заседание")

	pressRune(model, 't')
	assert.Equal(t, []string{"Комитет"}, titles(model.Visible()))

	pressRune(model, 's')
	assert.Equal(t, string(models.StatusScheduled), model.Query().Status)
	pressRune(model, 's')
	assert.Empty(t, model.Visible())
}

func TestCancel_WritesThroughStore(t *testing.T) {
	database := setupTestDB(t, event("03.10.2025", "10:00", "11:00", "Встреча", models.TypeMeeting))
	model := initModel(t, database, at(1, 12, 0))

	pressRune(model, 'x')

	stored, err := database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.Equal(t, models.StatusCancelled, model.Visible()[0].Status)
	assert.Contains(t, model.View(), "Cancelled: Встреча")

	// Cancelling again is an invalid transition
	pressRune(model, 'x')
	assert.ErrorIs(t, model.Err(), schedule.ErrInvalidTransition)
	assert.Contains(t, model.View(), "Ошибка:")
}

func TestArchiveToggle_RestoredEventStaysActive(t *testing.T) {
	// Given: an old meeting the first tick archives
	database := setupTestDB(t, event("20.09.2025", "10:00", "11:00", "Прошлое совещание", models.TypeMeeting))
	model := initModel(t, database, at(2, 12, 0))
	press(model, tea.KeyMsg{Type: tea.KeyTab})
	require.Len(t, model.Visible(), 1)

	// When: the user restores it
	pressRune(model, 'a')

	// Then: it leaves the archive and a later tick does not move it back
	assert.Empty(t, model.Visible())
	model.Update(model.runTick())
	press(model, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, []string{"Прошлое совещание"}, titles(model.Visible()))

	stored, err := database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.False(t, stored.Archived)
	assert.True(t, stored.ArchiveHold)

	// And: archiving it by hand works again
	pressRune(model, 'a')
	stored, err = database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.True(t, stored.Archived)
}

func TestStoreFailure_ShowsError(t *testing.T) {
	database := setupTestDB(t)
	model := initModel(t, database, at(1, 12, 0))
	require.NoError(t, database.Close())

	pressRune(model, 'r')

	assert.ErrorIs(t, model.Err(), schedule.ErrPersistenceFailure)
	assert.Contains(t, model.View(), "Ошибка:")
}

func TestScroll_KeepsSelectionVisible(t *testing.T) {
	var events []*models.Event
	for day := 2; day <= 9; day++ {
		date := time.Date(2025, time.October, day, 0, 0, 0, 0, time.Local).Format("02.01.2006")
		events = append(events, event(date, "10:00", "11:00", "Событие", models.TypeOther))
	}
	model := initModel(t, setupTestDB(t, events...), at(1, 12, 0))
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 14})

	for range 7 {
		pressRune(model, 'j')
	}

	assert.Equal(t, 7, model.SelectedIdx())
	assert.Positive(t, model.ScrollOffset())
	assert.Contains(t, model.View(), "Четверг, 9 октября 2025")
	assert.NotContains(t, model.View(), "Четверг, 2 октября 2025")
}

func TestFocus(t *testing.T) {
	model := New(setupTestDB(t))

	model.Update(tea.BlurMsg{})
	assert.False(t, model.Focused())
	assert.Contains(t, model.View(), "○")

	model.Update(tea.FocusMsg{})
	assert.True(t, model.Focused())
}

func TestHelpToggle(t *testing.T) {
	model := initModel(t, setupTestDB(t), at(1, 12, 0))

	pressRune(model, '?')
	assert.Contains(t, model.View(), "Cycle type filter")

	pressRune(model, '?')
	assert.NotContains(t, model.View(), "Cycle type filter")
}

func TestNextFilter(t *testing.T) {
	cycle := []string{"all", "a", "b"}

	assert.Equal(t, "a", nextFilter("all", cycle))
	assert.Equal(t, "all", nextFilter("b", cycle))
	assert.Equal(t, "all", nextFilter("unknown", cycle))
}

func TestYankText(t *testing.T) {
	call := event("02.10.2025", "10:00", "11:00", "Совещание", models.TypeVCS)
	call.VCSLink = "https://vcs.example/7"
	assert.Equal(t, "https://vcs.example/7", yankText(*call))

	plain := event("02.10.2025", "10:00", "11:00", "Встреча", models.TypeMeeting)
	assert.Equal(t, "02.10.2025 10:00-11:00 Встреча", yankText(*plain))
}
