package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for duplicate keys
const uniqueViolation = "23505"

// Repository handles user persistence
// ⭐ SSOT: users 테이블 접근은 이 타입에서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new user repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new user and returns it with generated fields filled in.
// A username or email collision maps to ErrAlreadyExists.
func (r *Repository) Create(ctx context.Context, username, email, hashedPassword string) (*User, error) {
	query := `
		INSERT INTO users (username, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, hashed_password, is_active, is_verified,
		          last_login, created_at, updated_at
	`

	u := &User{}
	err := r.pool.QueryRow(ctx, query, username, email, hashedPassword).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.IsActive,
		&u.IsVerified,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getByField(ctx, "email", email)
}

// GetByID retrieves a user by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getByField(ctx, "id", id)
}

func (r *Repository) getByField(ctx context.Context, field string, value interface{}) (*User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, hashed_password, is_active, is_verified,
		       last_login, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, field)

	u := &User{}
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.IsActive,
		&u.IsVerified,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by %s: %w", field, err)
	}

	return u, nil
}

// UpdateLastLogin stamps the user's last successful login time.
func (r *Repository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
