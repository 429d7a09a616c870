package db

import (
	"context"

	"github.com/chris/grafik/pkg/models"
)

// Store is the persistence surface the scheduler, the HTTP API and the TUI
// depend on. *DB implements it.
type Store interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	CreateEvent(ctx context.Context, e *models.Event) (int64, error)
	UpdateEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	SetLifecycle(ctx context.Context, id, version int64, status models.Status, archived bool) (bool, error)

	ListPersons(ctx context.Context) ([]models.Person, error)
	CreatePerson(ctx context.Context, p *models.Person) (int64, error)
	DeletePerson(ctx context.Context, id int64) error
}

var _ Store = (*DB)(nil)
