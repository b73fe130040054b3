package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"wevolve-backend/match/model"
)

const uniqueViolation = "23505"

const userColumns = `id, full_name, email, password_hash, provider, profile, created_at, updated_at`

type PGRepo struct {
	DB *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, full_name, email, password_hash, provider, profile, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	profile, err := json.Marshal(user.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		providerOrDefault(user.Provider),
		profile,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) Upsert(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, full_name, email, password_hash, provider, profile, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT ((lower(email))) DO UPDATE SET
  full_name = COALESCE(NULLIF(EXCLUDED.full_name, ''), users.full_name),
  updated_at = now()
RETURNING ` + userColumns
	profile, err := json.Marshal(user.Profile)
	if err != nil {
		return User{}, fmt.Errorf("encode profile: %w", err)
	}
	row := r.DB.QueryRowContext(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		providerOrDefault(user.Provider),
		profile,
	)
	return scanUser(row)
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) UpdateProfile(ctx context.Context, userID string, profile model.CandidateProfile) (User, error) {
	query := `
UPDATE users SET profile = $2, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns
	raw, err := json.Marshal(profile)
	if err != nil {
		return User{}, fmt.Errorf("encode profile: %w", err)
	}
	return scanUser(r.DB.QueryRowContext(ctx, query, userID, raw))
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var profile []byte
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Provider,
		&profile,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &user.Profile); err != nil {
			return User{}, fmt.Errorf("decode profile user=%s: %w", user.ID, err)
		}
	}
	return user, nil
}

func providerOrDefault(provider string) string {
	if provider == "" {
		return ProviderPassword
	}
	return provider
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
