package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/activity-ticketing/internal/model"
)

// PresenterRepo manages persistence for activity presenters.
type PresenterRepo struct {
	db *sql.DB
}

// NewPresenterRepo constructs a PresenterRepo with the given DB handle.
func NewPresenterRepo(db *sql.DB) *PresenterRepo {
	return &PresenterRepo{db: db}
}

const presenterCols = "id, activity_id, name, job, created_at, updated_at"

// Create inserts a presenter bound to an activity and populates the
// generated ID and timestamps on the struct.
func (r *PresenterRepo) Create(ctx context.Context, p *model.Presenter) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO presenters (activity_id, name, job) VALUES (?,?,?)",
		p.ActivityID, p.Name, p.Job)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT "+presenterCols+" FROM presenters WHERE id=?", p.ID).Scan(
		&p.ID, &p.ActivityID, &p.Name, &p.Job, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID retrieves a presenter by its ID.  Returns
// ErrPresenterNotFound if there is no matching row.
func (r *PresenterRepo) GetByID(ctx context.Context, id uint64) (*model.Presenter, error) {
	var p model.Presenter
	err := r.db.QueryRowContext(ctx,
		"SELECT "+presenterCols+" FROM presenters WHERE id=?", id).Scan(
		&p.ID, &p.ActivityID, &p.Name, &p.Job, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPresenterNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByActivity returns all presenters for an activity ordered by
// creation, oldest first.
func (r *PresenterRepo) ListByActivity(ctx context.Context, activityID uint64) ([]model.Presenter, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+presenterCols+" FROM presenters WHERE activity_id=? ORDER BY id ASC", activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Presenter, 0)
	for rows.Next() {
		var p model.Presenter
		if err := rows.Scan(&p.ID, &p.ActivityID, &p.Name, &p.Job, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update persists the full field set of p.
func (r *PresenterRepo) Update(ctx context.Context, p *model.Presenter) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE presenters SET name=?, job=? WHERE id=?",
		p.Name, p.Job, p.ID)
	return err
}

// Delete removes a presenter row.  Returns ErrPresenterNotFound when
// nothing was deleted.
func (r *PresenterRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM presenters WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPresenterNotFound
	}
	return nil
}
