package db

import (
	"context"
	"fmt"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

// ListPersons returns all responsible persons ordered by name
func (db *DB) ListPersons(ctx context.Context) ([]models.Person, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, position, phone, email
		FROM persons
		ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, persistErr("list persons", err)
	}
	defer rows.Close()

	var persons []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.Phone, &p.Email); err != nil {
			return nil, persistErr("scan person", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list persons", err)
	}
	return persons, nil
}

// CreatePerson stores p under the next free id and returns it
func (db *DB) CreatePerson(ctx context.Context, p *models.Person) (int64, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, persistErr("begin transaction", err)
	}
	defer tx.Rollback()

	var last int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM persons").Scan(&last); err != nil {
		return 0, persistErr("allocate person id", err)
	}
	id := schedule.NextID([]int64{last})

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO persons (id, name, position, phone, email) VALUES (?, ?, ?, ?, ?)",
		id, p.Name, p.Position, p.Phone, p.Email,
	); err != nil {
		return 0, persistErr("insert person", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, persistErr("commit person", err)
	}

	p.ID = id
	return id, nil
}

// DeletePerson removes a person. Events pointing at it keep the id and
// resolve to no one.
func (db *DB) DeletePerson(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", id)
	if err != nil {
		return persistErr("delete person", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return persistErr("delete person", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: person %d", schedule.ErrNotFound, id)
	}
	return nil
}
