package feed

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const joinQuery = `SELECT p.id, p.content, p.user_id, pr.full_name, pr.email, p.created_at
	FROM posts p
	INNER JOIN profiles pr ON pr.user_id = p.user_id`

// PostgresSource joins posts and profiles in a single SQL statement.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a source over an already migrated pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) Global(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, joinQuery+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (s *PostgresSource) ByAuthor(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, joinQuery+` WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			e  Entry
			id uuid.UUID
		)
		if err := rows.Scan(&id, &e.Content, &e.AuthorUserID, &e.AuthorName, &e.AuthorEmail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.PostID = id.String()
		e.CreatedAt = e.CreatedAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

var _ Source = (*PostgresSource)(nil)
