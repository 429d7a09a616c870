package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/grafik/internal/db"
	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/internal/scheduler"
	"github.com/chris/grafik/pkg/models"
)

func newTestServer(t *testing.T) (*db.DB, http.Handler) {
	t.Helper()
	database, err := db.NewForTesting(filepath.Join(t.TempDir(), "schedule.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, NewServer(database, WithUpcomingLimit(2)).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const plenaryJSON = `{
	"date": "2025-10-02",
	"timeStart": "10:00",
	"timeEnd": "14:00",
	"title": "Пленарное заседание",
	"type": "session",
	"location": "Большой зал",
	"status": "completed",
	"reminder": true,
	"reminderMinutes": 15
}`

func TestCreateEvent_ConvertsISODateAndForcesScheduled(t *testing.T) {
	// Given: an empty schedule
	database, h := newTestServer(t)

	// When: a form posts an event with an ISO date
	rec := do(t, h, http.MethodPost, "/events", plenaryJSON)

	// Then: it is created with the original response shape
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[createdResponse](t, rec)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Event created", created.Message)

	// And: stored canonically and scheduled
	e, err := database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "02.10.2025", e.Date)
	assert.Equal(t, models.StatusScheduled, e.Status)
}

func TestCreateEvent_RejectsInvalidInput(t *testing.T) {
	_, h := newTestServer(t)

	tests := map[string]string{
		"bad iso date":  strings.Replace(plenaryJSON, "2025-10-02", "2025-13-02", 1),
		"inverted time": strings.Replace(plenaryJSON, `"timeEnd": "14:00"`, `"timeEnd": "09:00"`, 1),
		"odd reminder":  strings.Replace(plenaryJSON, `"reminderMinutes": 15`, `"reminderMinutes": 10`, 1),
		"broken json":   `{"title":`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/events", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	database, h := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/events", plenaryJSON).Code)

	update := strings.Replace(plenaryJSON, "{", `{"id": 1,`, 1)
	update = strings.Replace(update, `"status": "completed"`, `"status": "cancelled"`, 1)
	rec := do(t, h, http.MethodPut, "/events", update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Event updated", decode[map[string]string](t, rec)["message"])

	e, err := database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, e.Status)
	assert.Equal(t, int64(2), e.Version)

	rec = do(t, h, http.MethodDelete, "/events?id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event deleted", decode[map[string]string](t, rec)["message"])

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/events?id=1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, "/events?id=abc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/events", strings.Replace(update, `"id": 1`, `"id": 7`, 1)).Code)
}

func TestUpdateEvent_UnarchiveSurvivesNextTick(t *testing.T) {
	// Given: a plenary from 02.10.2025 auto-archived by a tick on 20.10.2025
	database, h := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/events", plenaryJSON).Code)

	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.Local)
	quiet := scheduler.NotifierFunc(func(context.Context, int64, schedule.Notification) error { return nil })
	runner := scheduler.NewRunner(database, quiet, scheduler.WithClock(func() time.Time { return now }))
	tick := func() *models.Event {
		_, err := runner.RunOnce(t.Context())
		require.NoError(t, err)
		runner.Wait()
		e, err := database.GetEvent(t.Context(), 1)
		require.NoError(t, err)
		return e
	}
	require.True(t, tick().Archived)

	// When: the client sends the record back with archived=false
	body := strings.Replace(plenaryJSON, "{", `{"id": 1, "archived": false,`, 1)
	rec := do(t, h, http.MethodPut, "/events", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Then: the event is held out of auto-archival
	e, err := database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.False(t, e.Archived)
	assert.True(t, e.ArchiveHold)

	// And: the next tick leaves it active
	e = tick()
	assert.False(t, e.Archived)
	assert.Equal(t, models.StatusCompleted, e.Status)

	// When: an unrelated edit omits the hold
	body = strings.Replace(body, "Большой зал", "Малый зал", 1)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/events", body).Code)

	// Then: the hold is kept
	e, err = database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Малый зал", e.Location)
	assert.True(t, e.ArchiveHold)

	// When: the client archives it again
	body = strings.Replace(body, `"archived": false`, `"archived": true`, 1)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/events", body).Code)

	// Then: the hold is released
	e, err = database.GetEvent(t.Context(), 1)
	require.NoError(t, err)
	assert.True(t, e.Archived)
	assert.False(t, e.ArchiveHold)
}

func TestListEvents_EmptyIsArray(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/events", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"events":[]}`, rec.Body.String())
}

func TestView_GroupsFilteredEventsByDay(t *testing.T) {
	database, h := newTestServer(t)
	ctx := t.Context()
	for _, e := range []*models.Event{
		models.NewEvent("03.10.2025", "09:00", "10:00", "Комитет по бюджету", models.TypeCommittee),
		models.NewEvent("02.10.2025", "14:00", "15:00", "Встреча с избирателями", models.TypeMeeting),
		models.NewEvent("02.10.2025", "08:30", "09:00", "Комитет по обороне", models.TypeCommittee),
	} {
		_, err := database.CreateEvent(ctx, e)
		require.NoError(t, err)
	}

	rec := do(t, h, http.MethodGet, "/events/view?q=комитет&type=committee", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[viewResponse](t, rec)
	assert.Equal(t, 2, view.Total)
	require.Len(t, view.Days, 2)
	assert.Equal(t, "Четверг, 2 октября 2025", view.Days[0].Header)
	assert.Equal(t, "Комитет по обороне", view.Days[0].Events[0].Title)
	assert.Equal(t, "03.10.2025", view.Days[1].Date)

	rec = do(t, h, http.MethodGet, "/events/view?archived=true", "")
	assert.Empty(t, decode[viewResponse](t, rec).Days)
}

func TestUpcoming_UsesDefaultLimit(t *testing.T) {
	database, h := newTestServer(t)
	for _, date := range []string{"05.10.2025", "03.10.2025", "04.10.2025"} {
		e := models.NewEvent(date, "10:00", "11:00", "Встреча", models.TypeMeeting)
		e.Reminder, e.ReminderMinutes = true, 30
		_, err := database.CreateEvent(t.Context(), e)
		require.NoError(t, err)
	}

	rec := do(t, h, http.MethodGet, "/reminders/upcoming", "")
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode[eventsResponse](t, rec).Events
	require.Len(t, events, 2)
	assert.Equal(t, "03.10.2025", events[0].Date)
	assert.Equal(t, "04.10.2025", events[1].Date)

	rec = do(t, h, http.MethodGet, "/reminders/upcoming?limit=3", "")
	assert.Len(t, decode[eventsResponse](t, rec).Events, 3)
}

func TestPersons(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/persons", `{"name":"Иванова Анна","position":"Помощник"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Person created", decode[createdResponse](t, rec).Message)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/persons", `{"name":" "}`).Code)

	rec = do(t, h, http.MethodGet, "/persons", "")
	persons := decode[personsResponse](t, rec).Persons
	require.Len(t, persons, 1)
	assert.Equal(t, "Помощник", persons[0].Position)

	rec = do(t, h, http.MethodDelete, "/persons?id=1", "")
	assert.Equal(t, "Person deleted", decode[map[string]string](t, rec)["message"])
}

func TestCORSAndFallbacks(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodOptions, "/events", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, X-User-Id", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))

	rec = do(t, h, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodGet, "/schedule/events", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, "OK", rec.Body.String())
}

func TestStoreFailureIs500(t *testing.T) {
	database, h := newTestServer(t)
	require.NoError(t, database.Close())

	rec := do(t, h, http.MethodGet, "/events", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "persistence failure")
}
