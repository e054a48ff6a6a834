package post

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/janisto/huma-feed/internal/platform/postgres"
)

// PostgresStore implements Store on the posts table. The foreign key to
// profiles(user_id) enforces the author constraint.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over an already migrated pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Insert(ctx context.Context, p NewPost) (*Post, error) {
	created := Post{
		ID:           NewID(),
		Content:      p.Content,
		AuthorUserID: p.AuthorUserID,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO posts (id, user_id, content, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.MustParse(created.ID), created.AuthorUserID, created.Content, created.CreatedAt)
	if err != nil {
		if postgres.IsCode(err, postgres.CodeForeignKeyViolation) {
			return nil, ErrConstraintViolation
		}
		return nil, err
	}
	return &created, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, content, created_at FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (s *PostgresStore) ListByAuthor(ctx context.Context, userID string) ([]Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, content, created_at FROM posts WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func scanPosts(rows pgx.Rows) ([]Post, error) {
	defer rows.Close()

	out := make([]Post, 0)
	for rows.Next() {
		var (
			p  Post
			id uuid.UUID
		)
		if err := rows.Scan(&id, &p.AuthorUserID, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.ID = id.String()
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Store = (*PostgresStore)(nil)
