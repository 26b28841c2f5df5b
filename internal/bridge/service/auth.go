package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/rpcbridge/internal/bridge/domain"
	"github.com/aussiebroadwan/rpcbridge/internal/bridge/store"
	"github.com/aussiebroadwan/rpcbridge/pkg/cryptox"
	"github.com/aussiebroadwan/rpcbridge/pkg/idx"
)

var (
	// ErrNameTaken is returned by Signup when the name is already registered.
	ErrNameTaken = errors.New("service: name is already taken")

	// ErrInvalidCredentials is returned by Signin for an unknown name or a
	// wrong password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrSessionInvalid is returned by VerifySession for an unknown, expired
	// or undecodable session credential.
	ErrSessionInvalid = errors.New("service: missing or invalid session")
)

type AuthService struct {
	Store store.Store
}

// Signup registers a new account and mints its first session. The session is
// only inserted after the user row committed, so a name conflict never leaves
// a stray session behind.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (domain.AuthResponse, error) {
	salt := cryptox.RandomBytes(cryptox.PasswordSaltLength)

	user := domain.User{
		ID:             idx.New().String(),
		Name:           name,
		Email:          email,
		PasswordSalt:   salt,
		PasswordHash:   cryptox.Hash([]byte(password), salt),
		LastActivityAt: time.Now().UTC(),
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.AuthResponse{}, ErrNameTaken
		}
		return domain.AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	return s.mintSession(ctx, user)
}

// Signin authenticates by name and password and mints a fresh session.
// Sessions minted earlier stay valid until they expire or log out.
func (s *AuthService) Signin(ctx context.Context, name, password string) (domain.AuthResponse, error) {
	user, err := s.Store.Users().GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AuthResponse{}, ErrInvalidCredentials
		}
		return domain.AuthResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	if !cryptox.Equal(cryptox.Hash([]byte(password), user.PasswordSalt), user.PasswordHash) {
		return domain.AuthResponse{}, ErrInvalidCredentials
	}

	if err := s.Store.Users().TouchUser(ctx, user.ID, time.Now().UTC()); err != nil {
		return domain.AuthResponse{}, fmt.Errorf("touch user: %w", err)
	}

	return s.mintSession(ctx, user)
}

// Logout deletes the session matching the presented secret. An undecodable or
// unknown secret deletes nothing and is not an error; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, userID, secret string) error {
	raw, err := cryptox.DecodeSecret(secret)
	if err != nil {
		return nil
	}

	return s.Store.Sessions().DeleteSession(ctx, userID, cryptox.Hash(raw, cryptox.SessionSalt()))
}

// VerifySession resolves a credential pair to its user id, advancing the
// user's last-activity stamp. Unknown, expired and undecodable credentials
// all come back as ErrSessionInvalid.
func (s *AuthService) VerifySession(ctx context.Context, userID, secret string) (string, error) {
	raw, err := cryptox.DecodeSecret(secret)
	if err != nil {
		return "", ErrSessionInvalid
	}

	user, err := s.Store.Sessions().ResolveSession(ctx, userID, cryptox.Hash(raw, cryptox.SessionSalt()))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrSessionInvalid
		}
		return "", fmt.Errorf("resolve session: %w", err)
	}

	if err := s.Store.Users().TouchUser(ctx, user.ID, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("touch user: %w", err)
	}

	return user.ID, nil
}

// mintSession creates a session for the user and returns the auth response
// carrying the plaintext secret. Only the hash is stored.
func (s *AuthService) mintSession(ctx context.Context, user domain.User) (domain.AuthResponse, error) {
	secret := cryptox.RandomBytes(cryptox.SessionSecretLength)

	now := time.Now().UTC()
	session := domain.Session{
		UserID:     user.ID,
		SecretHash: cryptox.Hash(secret, cryptox.SessionSalt()),
		ExpiresAt:  now.Add(domain.SessionTTL),
		CreatedAt:  now,
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return domain.AuthResponse{}, fmt.Errorf("create session: %w", err)
	}

	return domain.AuthResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		TempPassword: cryptox.EncodeSecret(secret),
	}, nil
}
