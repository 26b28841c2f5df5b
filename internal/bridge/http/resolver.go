package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/rpcbridge/internal/bridge/service"
	"github.com/aussiebroadwan/rpcbridge/pkg/httpx"
)

// SessionResolver adapts the auth service into the resolver shape that
// authenticated endpoints take. Invalid sessions surface as the transport's
// 403; any other failure stays opaque.
func SessionResolver(auth *service.AuthService) func(ctx context.Context, userID, secret string) (string, error) {
	return func(ctx context.Context, userID, secret string) (string, error) {
		callerID, err := auth.VerifySession(ctx, userID, secret)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				return "", httpx.ErrForbidden
			}
			return "", fmt.Errorf("verify session: %w", err)
		}
		return callerID, nil
	}
}
