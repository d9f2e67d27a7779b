package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmedash/acmedash/internal/auth"
	"github.com/acmedash/acmedash/pkg/pg"
)

// UserRepository persists users, password hashes, one-time token keys and
// OAuth state tokens. It backs every auth storage interface.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *auth.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, auth_method, is_verified, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.AuthMethod, user.IsVerified, user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKey(err) {
			return auth.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return r.getUser(ctx,
		`SELECT id, email, name, auth_method, is_verified, created_at
		 FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.getUser(ctx,
		`SELECT id, email, name, auth_method, is_verified, created_at
		 FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg any) (*auth.User, error) {
	var u auth.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.AuthMethod, &u.IsVerified, &u.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateUserVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_verified = $2 WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) StorePasswordHash(ctx context.Context, userID uuid.UUID, hash []byte) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to store password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	var hash []byte
	err := r.pool.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to select password hash: %w", err)
	}
	// OAuth-only accounts carry no hash.
	if len(hash) == 0 {
		return nil, auth.ErrUserNotFound
	}
	return hash, nil
}

// Consume marks a one-time token key as used. The primary key makes the
// second insert a no-op, which is reported as ErrTokenAlreadyUsed.
func (r *UserRepository) Consume(ctx context.Context, key string, expiresAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO consumed_tokens (key, expires_at)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO NOTHING`,
		key, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to consume token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrTokenAlreadyUsed
	}
	return nil
}

// PurgeExpiredTokens drops consumed-token keys past their expiry. The keys
// only need to live as long as the tokens they fence.
func (r *UserRepository) PurgeExpiredTokens(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM consumed_tokens WHERE expires_at < now()`); err != nil {
		return fmt.Errorf("failed to purge consumed tokens: %w", err)
	}
	return nil
}

func (r *UserRepository) StoreState(ctx context.Context, state string, expiresAt time.Time) error {
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO oauth_states (state, expires_at) VALUES ($1, $2)`,
		state, expiresAt,
	); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}
	return nil
}

// ConsumeState atomically removes a stored state. Expired states count as
// missing.
func (r *UserRepository) ConsumeState(ctx context.Context, state string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM oauth_states WHERE state = $1 AND expires_at > now()`,
		state,
	)
	if err != nil {
		return fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrStateNotFound
	}
	return nil
}
