package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chris/grafik/internal/log"
	"github.com/chris/grafik/pkg/models"
)

// DefaultSpec ticks once a minute, matching reminder granularity
const DefaultSpec = "@every 60s"

// Store is what the runner needs from persistence
type Store interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	SetLifecycle(ctx context.Context, id, version int64, status models.Status, archived bool) (bool, error)
}

// Result summarizes one tick
type Result struct {
	Updates  []Update
	Notified []Notify
	Errors   []EventError
}

// Runner drives the engine from a cron schedule and dispatches its commands.
// Updates are written in the background and never delay the next tick.
type Runner struct {
	store    Store
	notifier Notifier
	engine   *Engine
	now      func() time.Time

	tickMu sync.Mutex

	mu    sync.Mutex
	cron  *cron.Cron
	entry cron.EntryID
	spec  string

	writes sync.WaitGroup
}

// Option configures a Runner
type Option func(*Runner)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// WithEngine shares an engine, and with it the notified set
func WithEngine(e *Engine) Option {
	return func(r *Runner) {
		r.engine = e
	}
}

// NewRunner creates a stopped runner
func NewRunner(store Store, notifier Notifier, opts ...Option) *Runner {
	r := &Runner{
		store:    store,
		notifier: notifier,
		engine:   NewEngine(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start schedules ticks on spec and starts the cron loop
func (r *Runner) Start(spec string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return fmt.Errorf("runner already started")
	}

	logger := log.CronLogger()
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	id, err := c.AddFunc(spec, r.tick)
	if err != nil {
		return fmt.Errorf("invalid tick schedule %q: %w", spec, err)
	}
	r.cron, r.entry, r.spec = c, id, spec
	c.Start()

	log.Info("scheduler started", "spec", spec)
	return nil
}

// Reschedule swaps the tick spec of a running runner. A bad spec leaves the
// current schedule in place.
func (r *Runner) Reschedule(spec string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron == nil {
		return fmt.Errorf("runner not started")
	}
	if spec == r.spec {
		return nil
	}

	id, err := r.cron.AddFunc(spec, r.tick)
	if err != nil {
		return fmt.Errorf("invalid tick schedule %q: %w", spec, err)
	}
	r.cron.Remove(r.entry)
	r.entry, r.spec = id, spec

	log.Info("scheduler rescheduled", "spec", spec)
	return nil
}

// Stop halts the cron loop, then waits for a running tick and outstanding
// writes, or for ctx to end.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()

	if c != nil {
		select {
		case <-c.Stop().Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	done := make(chan struct{})
	go func() {
		r.writes.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every dispatched update has been written
func (r *Runner) Wait() {
	r.writes.Wait()
}

func (r *Runner) tick() {
	res, err := r.RunOnce(context.Background())
	if err != nil {
		log.Error("tick failed", err)
		return
	}
	log.Debug("tick", "updates", len(res.Updates), "notified", len(res.Notified), "errors", len(res.Errors))
}

// RunOnce performs one tick: snapshot, engine, dispatch. Only a failure to
// read the snapshot is returned; per-event problems land in Result.Errors.
func (r *Runner) RunOnce(ctx context.Context) (Result, error) {
	r.tickMu.Lock()
	defer r.tickMu.Unlock()

	events, err := r.store.ListEvents(ctx)
	if err != nil {
		return Result{}, err
	}

	commands, errs := r.engine.Tick(events, r.now())
	res := Result{Errors: errs}
	for _, e := range errs {
		log.Error("skipping event", e.Err, "id", e.ID)
	}

	for _, c := range commands {
		switch c := c.(type) {
		case Update:
			res.Updates = append(res.Updates, c)
			r.dispatch(c)
		case Notify:
			res.Notified = append(res.Notified, c)
			if err := r.notifier.Notify(ctx, c.EventID, c.Notification); err != nil {
				log.Error("notify failed", err, "id", c.EventID)
			}
		}
	}
	return res, nil
}

func (r *Runner) dispatch(u Update) {
	r.writes.Add(1)
	go func() {
		defer r.writes.Done()
		applied, err := r.store.SetLifecycle(context.Background(), u.ID, u.Version, u.Status, u.Archived)
		if err != nil {
			log.Error("lifecycle write failed", err, "id", u.ID)
			return
		}
		if !applied {
			log.Debug("lifecycle write superseded", "id", u.ID, "version", u.Version)
			return
		}
		log.Debug("lifecycle updated", "id", u.ID, "status", u.Status, "archived", u.Archived)
	}()
}
