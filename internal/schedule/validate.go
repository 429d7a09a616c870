package schedule

import (
	"fmt"
	"slices"
	"strings"

	"github.com/chris/grafik/pkg/models"
)

// Validate checks the user-supplied fields of e
func Validate(e models.Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, e.Type)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, e.Status)
	}
	if _, err := ParseDate(e.Date); err != nil {
		return err
	}
	start, err := ParseClock(e.TimeStart)
	if err != nil {
		return err
	}
	end, err := ParseClock(e.TimeEnd)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, e.TimeStart, e.TimeEnd)
	}
	if e.Reminder && !slices.Contains(models.ReminderChoices, e.ReminderMinutes) {
		return fmt.Errorf("%w: %d minutes, want one of %v", ErrInvalidReminder, e.ReminderMinutes, models.ReminderChoices)
	}
	return nil
}

// NextID returns max(ids, 0) + 1
func NextID(ids []int64) int64 {
	var highest int64
	for _, id := range ids {
		highest = max(highest, id)
	}
	return highest + 1
}
