package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for auth events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert appends an event to the trail.
func (r *Repository) Insert(ctx context.Context, event Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO auth_events (user_id, email, action, detail, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.UserID, event.Email, event.Action, event.Detail, event.IP, event.UserAgent)
	return err
}

// List returns a page of events newest first plus the total count.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]Event, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM auth_events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, email, action, detail, ip, user_agent, created_at
		FROM auth_events
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Email, &e.Action, &e.Detail,
			&e.IP, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, e)
	}
	return result, total, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
