package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rpcbridge/internal/bridge/domain"
	"github.com/aussiebroadwan/rpcbridge/internal/bridge/store"
	"github.com/aussiebroadwan/rpcbridge/internal/bridge/store/drivers/sqlite"
	"github.com/aussiebroadwan/rpcbridge/pkg/cryptox"
	"github.com/aussiebroadwan/rpcbridge/pkg/slogx"
)

func newTestAuthService(t *testing.T) (*AuthService, store.Store) {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ReconcileIndexes(context.Background(), slogx.Discard()))

	return &AuthService{Store: s}, s
}

func TestSignup(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice", resp.Name)
	assert.Equal(t, "alice@example.com", resp.Email)

	secret, err := cryptox.DecodeSecret(resp.TempPassword)
	require.NoError(t, err)
	assert.Len(t, secret, cryptox.SessionSecretLength)

	t.Run("session is immediately usable", func(t *testing.T) {
		userID, err := svc.VerifySession(ctx, resp.ID, resp.TempPassword)
		require.NoError(t, err)
		assert.Equal(t, resp.ID, userID)
	})

	t.Run("name taken", func(t *testing.T) {
		_, err := svc.Signup(ctx, "alice", "other@example.com", "hunter2")
		require.ErrorIs(t, err, ErrNameTaken)
	})
}

func TestSignupConcurrentSameName(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	const racers = 8
	errs := make([]error, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Signup(ctx, "alice", "alice@example.com", "hunter2")
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, ErrNameTaken)
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, racers-1, lost)
}

func TestSignin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Signin(ctx, "alice", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, first.ID, resp.ID)
		assert.NotEqual(t, first.TempPassword, resp.TempPassword)
	})

	t.Run("earlier sessions stay valid", func(t *testing.T) {
		_, err := svc.VerifySession(ctx, first.ID, first.TempPassword)
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Signin(ctx, "alice", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown name looks identical", func(t *testing.T) {
		_, err := svc.Signin(ctx, "nobody", "hunter2")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.ID, resp.TempPassword))

	_, err = svc.VerifySession(ctx, resp.ID, resp.TempPassword)
	require.ErrorIs(t, err, ErrSessionInvalid)

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, resp.ID, resp.TempPassword))
	})

	t.Run("undecodable secret is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, resp.ID, "not base64 !!!"))
	})
}

func TestVerifySession(t *testing.T) {
	t.Parallel()

	svc, st := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		forged := cryptox.EncodeSecret(cryptox.RandomBytes(cryptox.SessionSecretLength))
		_, err := svc.VerifySession(ctx, resp.ID, forged)
		require.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("undecodable secret", func(t *testing.T) {
		_, err := svc.VerifySession(ctx, resp.ID, "not base64 !!!")
		require.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("touches last activity", func(t *testing.T) {
		before, err := st.Users().GetUserByID(ctx, resp.ID)
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		_, err = svc.VerifySession(ctx, resp.ID, resp.TempPassword)
		require.NoError(t, err)

		after, err := st.Users().GetUserByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.True(t, after.LastActivityAt.After(before.LastActivityAt))
	})

	t.Run("expired session is rejected and removed", func(t *testing.T) {
		secret := cryptox.RandomBytes(cryptox.SessionSecretLength)
		now := time.Now().UTC()

		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			UserID:     resp.ID,
			SecretHash: cryptox.Hash(secret, cryptox.SessionSalt()),
			ExpiresAt:  now.Add(-time.Minute),
			CreatedAt:  now.Add(-domain.SessionTTL),
		}))

		_, err := svc.VerifySession(ctx, resp.ID, cryptox.EncodeSecret(secret))
		require.ErrorIs(t, err, ErrSessionInvalid)

		// The lazy delete removed the row, so the same hash can be stored
		// again without a uniqueness conflict.
		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			UserID:     resp.ID,
			SecretHash: cryptox.Hash(secret, cryptox.SessionSalt()),
			ExpiresAt:  now.Add(domain.SessionTTL),
			CreatedAt:  now,
		}))
	})
}

// The sweep cutoff and the per-request expiry window must agree, otherwise
// the sweep would reclaim sessions the lazy check still accepts.
func TestSweepTTLMatchesSessionTTL(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.SessionTTL, domain.SessionSweepTTL)
}

func TestHousekeepingSweep(t *testing.T) {
	t.Parallel()

	svc, st := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
		UserID:     resp.ID,
		SecretHash: cryptox.RandomBytes(16),
		ExpiresAt:  now.Add(-time.Hour),
		CreatedAt:  now.Add(-domain.SessionSweepTTL - time.Hour),
	}))

	hk := NewHousekeepingService(st, slogx.Discard(), time.Hour)
	hk.Start()
	hk.Stop()

	// The stale session is gone, the live one survived.
	_, err = svc.VerifySession(ctx, resp.ID, resp.TempPassword)
	require.NoError(t, err)

	deleted, err := st.Sessions().DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
