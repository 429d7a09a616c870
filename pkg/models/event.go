package models

// EventType is the closed set of schedule entry kinds
type EventType string

const (
	TypeSession      EventType = "session"
	TypeCommittee    EventType = "committee"
	TypeMeeting      EventType = "meeting"
	TypeVisit        EventType = "visit"
	TypeVCS          EventType = "vcs"
	TypeRegionalTrip EventType = "regional-trip"
	TypeOther        EventType = "other"
)

// AllEventTypes lists every event type in display order
var AllEventTypes = []EventType{
	TypeSession,
	TypeCommittee,
	TypeMeeting,
	TypeVisit,
	TypeVCS,
	TypeRegionalTrip,
	TypeOther,
}

var typeLabels = map[EventType]string{
	TypeSession:      "Заседание",
	TypeCommittee:    "Комитет",
	TypeMeeting:      "Встреча",
	TypeVisit:        "Поездка",
	TypeVCS:          "ВКС",
	TypeRegionalTrip: "Выезд в регион",
	TypeOther:        "Другое",
}

// Valid reports whether t is one of the known event types
func (t EventType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns the localized name shown in lists and reports
func (t EventType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Status is the lifecycle state of an event
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses lists every status in lifecycle order
var AllStatuses = []Status{
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

var statusLabels = map[Status]string{
	StatusScheduled:  "Запланировано",
	StatusInProgress: "Идёт сейчас",
	StatusCompleted:  "Завершено",
	StatusCancelled:  "Отменено",
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the localized status name
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ReminderChoices are the only lead times a reminder may use, in minutes
var ReminderChoices = []int{5, 15, 30, 60, 120}

// Event is a single entry in the schedule.
// Date is stored as DD.MM.YYYY, TimeStart/TimeEnd as HH:MM (24h).
type Event struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	TimeStart   string    `json:"timeStart"`
	TimeEnd     string    `json:"timeEnd"`
	Title       string    `json:"title"`
	Type        EventType `json:"type"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`

	Reminder        bool `json:"reminder"`
	ReminderMinutes int  `json:"reminderMinutes,omitempty"` // 0 when unset

	Archived bool `json:"archived"`
	// ArchiveHold is set by an explicit unarchive and keeps auto-archival away
	ArchiveHold bool `json:"archiveHold,omitempty"`

	VCSLink    string `json:"vcsLink"`
	RegionName string `json:"regionName"`

	ResponsiblePersonID *int64 `json:"responsiblePersonId"` // weak reference, may dangle

	// Version is bumped on every write and guards tick updates against user edits
	Version int64 `json:"version"`
}

// NewEvent creates an event in the scheduled state
func NewEvent(date, timeStart, timeEnd, title string, eventType EventType) *Event {
	return &Event{
		Date:      date,
		TimeStart: timeStart,
		TimeEnd:   timeEnd,
		Title:     title,
		Type:      eventType,
		Status:    StatusScheduled,
	}
}

// HasReminder reports whether a reminder is enabled and has a lead time
func (e *Event) HasReminder() bool {
	return e.Reminder && e.ReminderMinutes > 0
}
