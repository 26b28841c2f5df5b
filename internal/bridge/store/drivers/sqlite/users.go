package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/rpcbridge/internal/bridge/domain"
	"github.com/aussiebroadwan/rpcbridge/internal/bridge/store"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_salt, password_hash, last_activity_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordSalt, u.PasswordHash, u.LastActivityAt.UTC(),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `
		SELECT id, name, email, password_salt, password_hash, last_activity_at
		FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	return r.getUser(ctx, `
		SELECT id, name, email, password_salt, password_hash, last_activity_at
		FROM users WHERE name = ?`, name)
}

func (r *usersRepo) getUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordSalt, &u.PasswordHash, &u.LastActivityAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) TouchUser(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_activity_at = ? WHERE id = ?`,
		at.UTC(), id,
	)
	return err
}
