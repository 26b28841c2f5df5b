package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/rpcbridge/internal/bridge/domain"
	"github.com/aussiebroadwan/rpcbridge/internal/bridge/store"
)

type sessionsRepo struct {
	db *sql.DB
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, secret_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?)`,
		s.UserID, s.SecretHash, s.ExpiresAt.UTC(), s.CreatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, userID string, secretHash []byte) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = ? AND secret_hash = ?`,
		userID, secretHash,
	)
	return err
}

// ResolveSession joins the session to its owner in one query. The expiry
// stamp on the row is checked here rather than in SQL so the lazy delete and
// the not-found result come from the same observation.
func (r *sessionsRepo) ResolveSession(ctx context.Context, userID string, secretHash []byte) (domain.User, error) {
	var (
		u         domain.User
		expiresAt time.Time
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.email, u.password_salt, u.password_hash, u.last_activity_at, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.user_id = ? AND s.secret_hash = ?`,
		userID, secretHash,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordSalt, &u.PasswordHash, &u.LastActivityAt, &expiresAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	if time.Now().After(expiresAt) {
		if err := r.DeleteSession(ctx, userID, secretHash); err != nil {
			return domain.User{}, err
		}
		return domain.User{}, store.ErrNotFound
	}

	return u, nil
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-domain.SessionSweepTTL).UTC()

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE created_at <= ?`, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
