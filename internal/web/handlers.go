package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

type eventsResponse struct {
	Events []models.Event `json:"events"`
}

type personsResponse struct {
	Persons []models.Person `json:"persons"`
}

type createdResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type dayResponse struct {
	Date   string         `json:"date"`
	Header string         `json:"header"`
	Events []models.Event `json:"events"`
}

type viewResponse struct {
	Days  []dayResponse `json:"days"`
	Total int           `json:"total"`
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.ListEvents(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: nonNil(events)})
}

// decodeEvent reads an event body and brings its date into canonical form.
// Forms send YYYY-MM-DD; DD.MM.YYYY is accepted as well.
func decodeEvent(r *http.Request) (*models.Event, error) {
	var e models.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		return nil, errors.New("invalid request body: " + err.Error())
	}
	date, err := schedule.NormalizeDate(e.Date)
	if err != nil {
		return nil, err
	}
	e.Date = date
	if !e.Reminder {
		e.ReminderMinutes = 0
	}
	return &e, nil
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	e, err := decodeEvent(r)
	if err != nil {
		writeInputError(w, err)
		return
	}
	e.Status = models.StatusScheduled
	if err := schedule.Validate(*e); err != nil {
		writeStoreError(w, err)
		return
	}

	id, err := s.store.CreateEvent(r.Context(), e)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "Event created"})
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	e, err := decodeEvent(r)
	if err != nil {
		writeInputError(w, err)
		return
	}
	if e.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := schedule.Validate(*e); err != nil {
		writeStoreError(w, err)
		return
	}

	stored, err := s.store.GetEvent(r.Context(), e.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	applyArchiveChange(stored, e)

	if err := s.store.UpdateEvent(r.Context(), e); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Event updated")
}

// applyArchiveChange treats a PUT that flips archived as the explicit
// archive or unarchive action. Otherwise the stored hold is kept, since
// clients send back the full record without it.
func applyArchiveChange(stored, e *models.Event) {
	switch {
	case stored.Archived && !e.Archived:
		schedule.Unarchive(e)
	case !stored.Archived && e.Archived:
		schedule.Archive(e)
	default:
		e.ArchiveHold = stored.ArchiveHold
	}
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.DeleteEvent(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Event deleted")
}

// handleView serves one filtered view grouped by day:
// ?q=text&type=all|<type>&status=all|<status>&archived=true
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := schedule.AllActive()
	q.Text = params.Get("q")
	if v := params.Get("type"); v != "" {
		q.Type = v
	}
	if v := params.Get("status"); v != "" {
		q.Status = v
	}
	q.Archived, _ = strconv.ParseBool(params.Get("archived"))

	events, err := s.store.ListEvents(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	filtered := schedule.Filter(events, q)
	days := schedule.Group(filtered).Days()
	resp := viewResponse{Days: make([]dayResponse, 0, len(days)), Total: len(filtered)}
	for _, d := range days {
		resp.Days = append(resp.Days, dayResponse{Date: d.Date, Header: d.Header, Events: d.Events})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), s.upcomingLimit)

	events, err := s.store.ListEvents(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: nonNil(schedule.Upcoming(events, limit))})
}

func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := s.store.ListPersons(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if persons == nil {
		persons = []models.Person{}
	}
	writeJSON(w, http.StatusOK, personsResponse{Persons: persons})
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var p models.Person
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := s.store.CreatePerson(r.Context(), &p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "Person created"})
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.DeletePerson(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Person deleted")
}

func writeInputError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, err.Error())
}

func nonNil(events []models.Event) []models.Event {
	if events == nil {
		return []models.Event{}
	}
	return events
}
