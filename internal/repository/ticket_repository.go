// This file contains data access logic for tickets. Besides plain CRUD
// it implements the two conditional updates the reservation state
// machine depends on: Reserve and Release. Both are single UPDATE
// statements guarded by the expected prior status, so concurrent
// callers racing on the same ticket are linearized by the database and
// exactly one of them observes a row change.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/activity-ticketing/internal/model"
)

// TicketRepo manages persistence for tickets.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

const ticketCols = "id, name, description, ticket_no, price_cents, status, user_id, activity_id, created_at, updated_at"

// Create inserts a new ticket and populates the generated ID and
// DB-default fields on the struct.  A duplicate ticket_no hits the
// UNIQUE index (MySQL error 1062) and maps to ErrConflict.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	if t.Status == "" {
		t.Status = model.TicketAvailable
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tickets (name, description, ticket_no, price_cents, status, activity_id) VALUES (?,?,?,?,?,?)",
		t.Name, t.Description, t.TicketNo, t.PriceCents, t.Status, t.ActivityID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return r.scanByID(ctx, t.ID, t)
}

// GetByID retrieves a ticket by its ID.  Returns ErrTicketNotFound if
// there is no matching row.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	var t model.Ticket
	if err := r.scanByID(ctx, id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) scanByID(ctx context.Context, id uint64, t *model.Ticket) error {
	var (
		desc   sql.NullString
		userID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT "+ticketCols+" FROM tickets WHERE id=?", id).Scan(
		&t.ID, &t.Name, &desc, &t.TicketNo, &t.PriceCents, &t.Status, &userID, &t.ActivityID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrTicketNotFound
		}
		return err
	}
	t.Description = nil
	if desc.Valid {
		d := desc.String
		t.Description = &d
	}
	t.UserID = nil
	if userID.Valid {
		u := uint64(userID.Int64)
		t.UserID = &u
	}
	return nil
}

// List returns all tickets ordered by creation time, newest first.
func (r *TicketRepo) List(ctx context.Context) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ticketCols+" FROM tickets ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Ticket, 0)
	for rows.Next() {
		var (
			t      model.Ticket
			desc   sql.NullString
			userID sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.Name, &desc, &t.TicketNo, &t.PriceCents, &t.Status, &userID, &t.ActivityID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			t.Description = &d
		}
		if userID.Valid {
			u := uint64(userID.Int64)
			t.UserID = &u
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Reserve atomically transitions a ticket from available to reserved
// and attributes it to userID.  It reports whether the row actually
// changed: false means the ticket was not in the available state at
// the moment the UPDATE ran, which is how the loser of a race between
// two concurrent reservations finds out.
func (r *TicketRepo) Reserve(ctx context.Context, ticketID, userID uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tickets SET status=?, user_id=? WHERE id=? AND status=?",
		model.TicketReserved, userID, ticketID, model.TicketAvailable)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Release atomically transitions a ticket from reserved back to
// available and clears the reserving user.  Like Reserve it reports
// whether the conditional update matched.
func (r *TicketRepo) Release(ctx context.Context, ticketID uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tickets SET status=?, user_id=NULL WHERE id=? AND status=?",
		model.TicketAvailable, ticketID, model.TicketReserved)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Update persists the full field set of t, including status and
// reserving user.  This is the admin escape hatch: it is the only
// write path that can set the cancelled status.  A duplicate
// ticket_no maps to ErrConflict.
func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE tickets SET name=?, description=?, price_cents=?, status=?, user_id=?, activity_id=? WHERE id=?",
		t.Name, t.Description, t.PriceCents, t.Status, t.UserID, t.ActivityID, t.ID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}

// Delete removes a ticket row.  Returns ErrTicketNotFound when nothing
// was deleted.  No check is made against an outstanding reservation.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tickets WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTicketNotFound
	}
	return nil
}
