package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/janisto/huma-feed/internal/platform/postgres"
)

const profileColumns = `id, user_id, full_name, email, bio, created_at, updated_at`

// PostgresStore implements Store on the profiles table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over an already migrated pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var (
		p  Profile
		id uuid.UUID
	)
	if err := row.Scan(&id, &p.UserID, &p.FullName, &p.Email, &p.Bio, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = id.String()
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func (s *PostgresStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	row := s.pool.QueryRow(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING `+profileColumns,
		uuid.New(), userID, params.FullName, normalizeEmail(params.Email), params.Bio, now)

	p, err := scanProfile(row)
	if err != nil {
		if postgres.IsCode(err, postgres.CodeUniqueViolation) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*Profile, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) GetMany(ctx context.Context, userIDs []string) (map[string]*Profile, error) {
	ids := uniqueIDs(userIDs)
	out := make(map[string]*Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out[p.UserID] = p
	}
	return out, rows.Err()
}

// Update rewrites full_name and bio in a single statement; the row lock it
// takes makes concurrent updates last-write-wins.
func (s *PostgresStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE profiles SET full_name = $2, bio = $3, updated_at = $4
		 WHERE user_id = $1
		 RETURNING `+profileColumns,
		userID, params.FullName, params.Bio, time.Now().UTC().Truncate(time.Microsecond))

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

var _ Store = (*PostgresStore)(nil)
