package schedule

import (
	"fmt"

	"github.com/chris/grafik/pkg/models"
)

// Unassigned is displayed when an event has no resolvable responsible person
const Unassigned = "-"

// Registry resolves responsible person ids
type Registry struct {
	byID map[int64]models.Person
}

// NewRegistry indexes persons by id
func NewRegistry(persons []models.Person) *Registry {
	r := &Registry{byID: make(map[int64]models.Person, len(persons))}
	for _, p := range persons {
		r.byID[p.ID] = p
	}
	return r
}

// Resolve looks up a responsible person. A nil id yields (nil, nil); an id
// without a registry entry yields ErrDanglingPersonReference.
func (r *Registry) Resolve(id *int64) (*models.Person, error) {
	if id == nil {
		return nil, nil
	}
	if r != nil {
		if p, ok := r.byID[*id]; ok {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: person %d", ErrDanglingPersonReference, *id)
}

// ResponsibleName returns the name of e's responsible person, or Unassigned
// when there is none or the reference dangles
func (r *Registry) ResponsibleName(e models.Event) string {
	p, err := r.Resolve(e.ResponsiblePersonID)
	if err != nil || p == nil || p.Name == "" {
		return Unassigned
	}
	return p.Name
}
