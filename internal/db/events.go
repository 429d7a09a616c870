package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

const eventSelectColumns = `
	id, date, time_start, time_end, title, type, location, description, status,
	reminder, reminder_minutes, archived, archive_hold, vcs_link, region_name,
	responsible_person_id, version
	FROM events
`

// Dates are stored as DD.MM.YYYY, so ordering goes through the year, month
// and day substrings. Most recent day first, earliest start first.
const eventOrder = `
	ORDER BY substr(date, 7, 4) DESC, substr(date, 4, 2) DESC, substr(date, 1, 2) DESC,
	time_start ASC, id ASC
`

// scanEvent scans a row selected with eventSelectColumns
func scanEvent(scanner interface{ Scan(...any) error }) (*models.Event, error) {
	e := &models.Event{}
	var (
		minutes sql.NullInt64
		person  sql.NullInt64
	)
	err := scanner.Scan(
		&e.ID,
		&e.Date,
		&e.TimeStart,
		&e.TimeEnd,
		&e.Title,
		&e.Type,
		&e.Location,
		&e.Description,
		&e.Status,
		&e.Reminder,
		&minutes,
		&e.Archived,
		&e.ArchiveHold,
		&e.VCSLink,
		&e.RegionName,
		&person,
		&e.Version,
	)
	if err != nil {
		return nil, err
	}

	if minutes.Valid {
		e.ReminderMinutes = int(minutes.Int64)
	}
	if person.Valid {
		id := person.Int64
		e.ResponsiblePersonID = &id
	}
	return e, nil
}

// ListEvents returns every event, active and archived
func (db *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+eventSelectColumns+eventOrder)
	if err != nil {
		return nil, persistErr("list events", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, persistErr("scan event", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list events", err)
	}
	return events, nil
}

// GetEvent retrieves an event by ID
func (db *DB) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	row := db.conn.QueryRowContext(ctx, "SELECT "+eventSelectColumns+" WHERE id = ?", id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: event %d", schedule.ErrNotFound, id)
	}
	if err != nil {
		return nil, persistErr("get event", err)
	}
	return e, nil
}

// CreateEvent stores e under the next free id and returns it. New events
// always start scheduled and active whatever the caller set.
func (db *DB) CreateEvent(ctx context.Context, e *models.Event) (int64, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, persistErr("begin transaction", err)
	}
	defer tx.Rollback()

	var last int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM events").Scan(&last); err != nil {
		return 0, persistErr("allocate event id", err)
	}
	id := schedule.NextID([]int64{last})

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (
			id, date, time_start, time_end, title, type, location, description, status,
			reminder, reminder_minutes, archived, archive_hold, vcs_link, region_name,
			responsible_person_id, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?, ?, 1)`,
		id, e.Date, e.TimeStart, e.TimeEnd, e.Title, string(e.Type), e.Location, e.Description,
		string(models.StatusScheduled), boolToInt(e.Reminder), reminderMinutes(e),
		e.VCSLink, e.RegionName, e.ResponsiblePersonID,
	)
	if err != nil {
		return 0, persistErr("insert event", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, persistErr("commit event", err)
	}

	e.ID = id
	e.Status = models.StatusScheduled
	e.Archived = false
	e.ArchiveHold = false
	e.Version = 1
	return id, nil
}

// UpdateEvent overwrites every field of the stored event with e and bumps
// its version. The user's write always wins.
func (db *DB) UpdateEvent(ctx context.Context, e *models.Event) error {
	var version int64
	err := db.conn.QueryRowContext(ctx, `
		UPDATE events SET
			date = ?, time_start = ?, time_end = ?, title = ?, type = ?, location = ?,
			description = ?, status = ?, reminder = ?, reminder_minutes = ?, archived = ?,
			archive_hold = ?, vcs_link = ?, region_name = ?, responsible_person_id = ?,
			version = version + 1
		WHERE id = ?
		RETURNING version`,
		e.Date, e.TimeStart, e.TimeEnd, e.Title, string(e.Type), e.Location,
		e.Description, string(e.Status), boolToInt(e.Reminder), reminderMinutes(e), boolToInt(e.Archived),
		boolToInt(e.ArchiveHold), e.VCSLink, e.RegionName, e.ResponsiblePersonID,
		e.ID,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: event %d", schedule.ErrNotFound, e.ID)
	}
	if err != nil {
		return persistErr("update event", err)
	}
	e.Version = version
	return nil
}

// SetLifecycle writes an automatic status/archive change. It only applies
// when the stored version still equals version; otherwise a user edit got
// there first and the change is dropped. Reports whether a row changed.
func (db *DB) SetLifecycle(ctx context.Context, id, version int64, status models.Status, archived bool) (bool, error) {
	result, err := db.conn.ExecContext(ctx, `
		UPDATE events SET status = ?, archived = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		string(status), boolToInt(archived), id, version,
	)
	if err != nil {
		return false, persistErr("set lifecycle", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, persistErr("set lifecycle", err)
	}
	return n == 1, nil
}

// DeleteEvent removes an event by ID
func (db *DB) DeleteEvent(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return persistErr("delete event", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return persistErr("delete event", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: event %d", schedule.ErrNotFound, id)
	}
	return nil
}

// CountEvents returns the total number of events in the database
func (db *DB) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, persistErr("count events", err)
	}
	return count, nil
}

func reminderMinutes(e *models.Event) any {
	if e.ReminderMinutes == 0 {
		return nil
	}
	return e.ReminderMinutes
}
