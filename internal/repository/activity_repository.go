// This file contains data access logic for activities. An Activity is a
// schedulable event that owns tickets and presenters. The reservation
// flow only ever reads activity status; all writes go through the
// admin CRUD handlers.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/activity-ticketing/internal/model"
)

// ActivityRepo manages persistence for activities.
type ActivityRepo struct {
	db *sql.DB
}

// NewActivityRepo constructs an ActivityRepo with the given DB handle.
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

const activityCols = "id, title, description, type, date, location, capacity, status, created_at, updated_at"

// Create inserts a new activity and assigns the generated ID back to
// the struct.  Status defaults to open in the DB when empty.
func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	if a.Status == "" {
		a.Status = model.ActivityOpen
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO activities (title, description, type, date, location, capacity, status) VALUES (?,?,?,?,?,?,?)",
		a.Title, a.Description, a.Type, a.Date, a.Location, a.Capacity, a.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	return r.db.QueryRowContext(ctx,
		"SELECT "+activityCols+" FROM activities WHERE id=?", a.ID).Scan(
		&a.ID, &a.Title, &a.Description, &a.Type, &a.Date, &a.Location, &a.Capacity, &a.Status, &a.CreatedAt, &a.UpdatedAt)
}

// GetByID retrieves an activity by its ID.  Returns ErrActivityNotFound
// if there is no matching row.
func (r *ActivityRepo) GetByID(ctx context.Context, id uint64) (*model.Activity, error) {
	var a model.Activity
	err := r.db.QueryRowContext(ctx,
		"SELECT "+activityCols+" FROM activities WHERE id=?", id).Scan(
		&a.ID, &a.Title, &a.Description, &a.Type, &a.Date, &a.Location, &a.Capacity, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Status returns only the status column for an activity.  The
// reservation service uses this as its activity gate, so the query is
// deliberately as narrow as possible.
func (r *ActivityRepo) Status(ctx context.Context, id uint64) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx,
		"SELECT status FROM activities WHERE id=?", id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrActivityNotFound
		}
		return "", err
	}
	return status, nil
}

// List returns all activities ordered by date ascending.
func (r *ActivityRepo) List(ctx context.Context) ([]model.Activity, error) {
	return r.query(ctx, "SELECT "+activityCols+" FROM activities ORDER BY date ASC")
}

// Search returns activities filtered by type and/or calendar day.  A
// nil filter matches everything.  The date filter matches activities
// whose date falls within [day, day+24h), mirroring a by-day search.
func (r *ActivityRepo) Search(ctx context.Context, typ *string, day *time.Time) ([]model.Activity, error) {
	q := "SELECT " + activityCols + " FROM activities WHERE 1=1"
	args := make([]interface{}, 0, 3)
	if typ != nil {
		q += " AND type=?"
		args = append(args, *typ)
	}
	if day != nil {
		start := day.UTC().Truncate(24 * time.Hour)
		q += " AND date >= ? AND date < ?"
		args = append(args, start, start.Add(24*time.Hour))
	}
	q += " ORDER BY date ASC"
	return r.query(ctx, q, args...)
}

func (r *ActivityRepo) query(ctx context.Context, q string, args ...interface{}) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Type, &a.Date, &a.Location, &a.Capacity, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update persists the full field set of a.  Callers load the activity
// first and overwrite only the fields present in the request.
func (r *ActivityRepo) Update(ctx context.Context, a *model.Activity) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE activities SET title=?, description=?, type=?, date=?, location=?, capacity=?, status=? WHERE id=?",
		a.Title, a.Description, a.Type, a.Date, a.Location, a.Capacity, a.Status, a.ID)
	return err
}

// Delete removes an activity row.  Returns ErrActivityNotFound when
// nothing was deleted.  No cascade checks are made against tickets or
// presenters; child rows are removed by FK cascade.
func (r *ActivityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM activities WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrActivityNotFound
	}
	return nil
}
