package authsdk

import (
	"context"

	"github.com/aussiebroadwan/rpcbridge/pkg/rpc/rpcclient"
)

// Session is an authenticated account. The secret stays unexported; callers
// hand it to RPC calls via AuthParam rather than reading it out.
type Session struct {
	client *SDKClient

	UserID string
	Name   string
	Email  string

	tempPassword string
}

// AuthParam returns the credential pair for authenticated RPC calls.
func (s *Session) AuthParam() rpcclient.AuthParam {
	return rpcclient.AuthParam{
		UserID:       s.UserID,
		TempPassword: s.tempPassword,
	}
}

// Logout deletes this session on the server. Logging out an already deleted
// or expired session is not an error.
func (s *Session) Logout(ctx context.Context) error {
	return s.client.post(ctx, "/api/v0/logout", struct{}{}, s.UserID+":"+s.tempPassword, nil)
}
