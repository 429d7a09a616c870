package scheduler

import (
	"fmt"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

// Command is one effect a tick asks for. It is either an Update or a Notify.
type Command interface {
	command()
}

// Update persists an automatic lifecycle change. Version is the event version
// the change was computed from.
type Update struct {
	ID       int64
	Version  int64
	Status   models.Status
	Archived bool
}

// Notify shows a reminder
type Notify struct {
	EventID      int64
	Notification schedule.Notification
}

func (Update) command() {}
func (Notify) command() {}

func (u Update) String() string {
	return fmt.Sprintf("update event %d (v%d): status=%s archived=%t", u.ID, u.Version, u.Status, u.Archived)
}

func (n Notify) String() string {
	return fmt.Sprintf("notify event %d: %s", n.EventID, n.Notification.Title)
}

// EventError is a failure confined to one event during a tick
type EventError struct {
	ID  int64
	Err error
}

func (e EventError) Error() string {
	return fmt.Sprintf("event %d: %v", e.ID, e.Err)
}

func (e EventError) Unwrap() error {
	return e.Err
}
