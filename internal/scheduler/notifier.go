package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/chris/grafik/internal/schedule"
)

// Notifier delivers a reminder to the user
type Notifier interface {
	Notify(ctx context.Context, eventID int64, n schedule.Notification) error
}

// WriterNotifier prints reminders as text blocks
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a notifier writing to w
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(_ context.Context, eventID int64, notification schedule.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.w, "[%d] %s\n    %s\n", eventID, notification.Title, notification.Body)
	return err
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, eventID int64, n schedule.Notification) error

func (f NotifierFunc) Notify(ctx context.Context, eventID int64, n schedule.Notification) error {
	return f(ctx, eventID, n)
}
