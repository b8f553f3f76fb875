// Package repository contains the data access layer.  Each repository wraps
// a *sql.DB, writes its SQL by hand and maps driver errors onto the sentinel
// errors in the model package so upper layers never see MySQL specifics.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/nkoreli/museum-reservations/internal/model"
)

// mysqlDupEntry is the MySQL error number for a unique index violation.
const mysqlDupEntry = 1062

// reservationCols is the column list shared by every SELECT in this file so
// scanning stays in one place.
const reservationCols = `id, reservation_number, event_id, event_title, event_date, total_amount,
	first_name, last_name, email, phone, number_of_people, notes, status, created_at, updated_at`

// ReservationRepo persists reservations.  It is the MySQL implementation of
// the booking store contract: create with a unique reservation number,
// lookups by number and by filter, capacity accounting, and the two guarded
// mutations (status, restricted fields).
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need raw access,
// e.g. the event repository's dependent-record check.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	var notes sql.NullString
	err := row.Scan(
		&res.ID, &res.Number, &res.EventID, &res.EventTitle, &res.EventDate, &res.TotalAmount,
		&res.FirstName, &res.LastName, &res.Email, &res.Phone, &res.NumberOfPeople,
		&notes, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		res.Notes = notes.String
	}
	return &res, nil
}

// Create inserts a new reservation and populates the generated ID and the
// DB-side timestamps on the provided record.  A collision on the unique
// reservation_number index is reported as model.ErrDuplicateNumber so the
// booking service can regenerate the number.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
		(reservation_number, event_id, event_title, event_date, total_amount,
		 first_name, last_name, email, phone, number_of_people, notes, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	result, err := r.db.ExecContext(ctx, q,
		res.Number, res.EventID, res.EventTitle, res.EventDate.UTC(), res.TotalAmount,
		res.FirstName, res.LastName, res.Email, res.Phone, res.NumberOfPeople,
		res.Notes, res.Status,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return model.ErrDuplicateNumber
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	// Query back the full row to pick up created_at/updated_at defaults.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id)
	stored, err := scanReservation(row)
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// GetByNumber returns the reservation with the given number or
// model.ErrReservationNotFound.
func (r *ReservationRepo) GetByNumber(ctx context.Context, number string) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE reservation_number = ?`, number)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrReservationNotFound
	}
	return res, err
}

// ListByFilter returns reservations matching the optional email and event
// filters, newest first.  Email matching is exact against the stored
// lowercase form.  A non-positive limit falls back to 100 records.
func (r *ReservationRepo) ListByFilter(ctx context.Context, f model.ReservationFilter, limit int) ([]model.Reservation, error) {
	if limit <= 0 {
		limit = 100
	}
	where := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if f.Email != "" {
		where = append(where, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(f.Email)))
	}
	if f.EventID != "" {
		where = append(where, "event_id = ?")
		args = append(args, f.EventID)
	}
	q := `SELECT ` + reservationCols + ` FROM reservations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// ListActiveByEvent returns every non-cancelled reservation for an event.
// The booking service sums their party sizes for admission control.
func (r *ReservationRepo) ListActiveByEvent(ctx context.Context, eventID string) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE event_id = ? AND status <> ?`,
		eventID, model.StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of a reservation and returns the updated
// record.  An UPDATE touching zero rows is ambiguous in MySQL (missing row
// vs. no change), so existence is decided by the re-fetch.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, number, status string) (*model.Reservation, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ?, updated_at = NOW() WHERE reservation_number = ?`,
		status, number)
	if err != nil {
		return nil, err
	}
	return r.GetByNumber(ctx, number)
}

// UpdateFields applies the given column/value pairs to a reservation and
// returns the updated record.  The caller is responsible for restricting the
// keys to the amendable set; the repository applies them verbatim.
func (r *ReservationRepo) UpdateFields(ctx context.Context, number string, fields map[string]any) (*model.Reservation, error) {
	if len(fields) == 0 {
		return r.GetByNumber(ctx, number)
	}
	set := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for col, val := range fields {
		set = append(set, col+" = ?")
		args = append(args, val)
	}
	set = append(set, "updated_at = NOW()")
	args = append(args, number)
	q := `UPDATE reservations SET ` + strings.Join(set, ", ") + ` WHERE reservation_number = ?`
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByNumber(ctx, number)
}
