package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/nkoreli/museum-reservations/internal/model"
)

const eventCols = `id, title, description, date, location, price, capacity, created_at, updated_at`

// EventRepo manages the event catalogue.  Events use public string IDs
// (EVT-... codes) so the reservation's foreign key matches the external
// handle style of the rest of the API.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var ev model.Event
	var desc, loc sql.NullString
	var capacity sql.NullInt64
	err := row.Scan(&ev.ID, &ev.Title, &desc, &ev.Date, &loc, &ev.Price,
		&capacity, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		ev.Description = desc.String
	}
	if loc.Valid {
		ev.Location = loc.String
	}
	if capacity.Valid {
		n := int(capacity.Int64)
		ev.Capacity = &n
	}
	return &ev, nil
}

// Create inserts a new event.  The caller supplies the public ID.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	const q = `INSERT INTO events (id, title, description, date, location, price, capacity)
		VALUES (?,?,?,?,?,?,?)`
	var capacity any
	if ev.Capacity != nil {
		capacity = *ev.Capacity
	}
	_, err := r.db.ExecContext(ctx, q,
		ev.ID, ev.Title, ev.Description, ev.Date.UTC(), ev.Location, ev.Price, capacity)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return model.ErrDuplicateNumber
		}
		return err
	}
	stored, err := r.GetByID(ctx, ev.ID)
	if err != nil {
		return err
	}
	*ev = *stored
	return nil
}

// GetByID returns the event with the given public ID or model.ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventCols+` FROM events WHERE id = ?`, id)
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrEventNotFound
	}
	return ev, err
}

// List returns the whole catalogue ordered by event date ascending.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventCols+` FROM events ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	return out, rows.Err()
}

// Update overwrites the mutable event fields.  It returns
// model.ErrEventNotFound when the event does not exist.  Capacity edits do
// not retroactively touch existing reservations: admission control is
// checked at booking time only.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event) error {
	var capacity any
	if ev.Capacity != nil {
		capacity = *ev.Capacity
	}
	const q = `UPDATE events SET title=?, description=?, date=?, location=?, price=?, capacity=?, updated_at=NOW()
		WHERE id=?`
	if _, err := r.db.ExecContext(ctx, q,
		ev.Title, ev.Description, ev.Date.UTC(), ev.Location, ev.Price, capacity, ev.ID); err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, ev.ID)
	if err != nil {
		return err
	}
	*ev = *stored
	return nil
}

// Delete removes an event.  It refuses with model.ErrConflict when
// non-cancelled reservations still reference it, so the ledger never points
// at a vanished event.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	var active int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE event_id = ? AND status <> ?`,
		id, model.StatusCancelled).Scan(&active)
	if err != nil {
		return err
	}
	if active > 0 {
		return model.ErrConflict
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrEventNotFound
	}
	return nil
}
