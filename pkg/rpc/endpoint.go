package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/rpcbridge/pkg/rpc/schema"
)

// Endpoint is one versioned operation within a namespace. Definitions are
// static: built once at startup, then read by the dispatcher and the client
// generator. (Namespace, Name, Version) forms the route.
type Endpoint struct {
	Name    string
	Version int

	// Body and Resp describe the request and response wire shapes. The same
	// values drive request validation, response validation and client type
	// emission.
	Body schema.Schema
	Resp schema.Schema

	// Access is the tagged anonymous/authenticated variant.
	Access Access
}

// Access distinguishes anonymous endpoints from authenticated ones.
// Exactly two implementations exist: Anonymous and Authenticated.
type Access interface {
	anonymous() bool
}

// Anonymous endpoints require no credential.
type Anonymous struct {
	// Handle receives the raw validated body and returns the response value.
	Handle func(ctx context.Context, body json.RawMessage) (any, error)
}

func (Anonymous) anonymous() bool { return true }

// Authenticated endpoints resolve the caller's credential pair before the
// handler runs.
type Authenticated struct {
	// Resolve turns a credential pair into a caller value. Its error is
	// propagated to the transport verbatim.
	Resolve func(ctx context.Context, userID, secret string) (any, error)

	// Handle receives the resolved caller and the raw validated body.
	Handle func(ctx context.Context, caller any, body json.RawMessage) (any, error)
}

func (Authenticated) anonymous() bool { return false }

// Anon builds an anonymous endpoint from a typed handler. The body is
// validated against the body schema before it is decoded into B, so the
// handler never sees a shape-invalid request.
func Anon[B, R any](name string, version int, body, resp schema.Schema,
	handler func(ctx context.Context, body B) (R, error),
) Endpoint {
	if handler == nil {
		panic(fmt.Sprintf("rpc: endpoint %s v%d has a nil handler", name, version))
	}

	return Endpoint{
		Name:    name,
		Version: version,
		Body:    body,
		Resp:    resp,
		Access: Anonymous{
			Handle: func(ctx context.Context, raw json.RawMessage) (any, error) {
				b, err := decodeBody[B](raw)
				if err != nil {
					return nil, err
				}
				return handler(ctx, b)
			},
		},
	}
}

// Auth builds an authenticated endpoint from a typed resolver and handler.
// U is whatever caller representation the resolver produces (a user record,
// a bare user id, ...).
func Auth[B, R, U any](name string, version int, body, resp schema.Schema,
	resolve func(ctx context.Context, userID, secret string) (U, error),
	handler func(ctx context.Context, caller U, body B) (R, error),
) Endpoint {
	if resolve == nil {
		panic(fmt.Sprintf("rpc: endpoint %s v%d has a nil auth resolver", name, version))
	}
	if handler == nil {
		panic(fmt.Sprintf("rpc: endpoint %s v%d has a nil handler", name, version))
	}

	return Endpoint{
		Name:    name,
		Version: version,
		Body:    body,
		Resp:    resp,
		Access: Authenticated{
			Resolve: func(ctx context.Context, userID, secret string) (any, error) {
				return resolve(ctx, userID, secret)
			},
			Handle: func(ctx context.Context, caller any, raw json.RawMessage) (any, error) {
				b, err := decodeBody[B](raw)
				if err != nil {
					return nil, err
				}
				return handler(ctx, caller.(U), b)
			},
		},
	}
}

func decodeBody[B any](raw json.RawMessage) (B, error) {
	var b B
	if err := json.Unmarshal(raw, &b); err != nil {
		return b, fmt.Errorf("rpc: decode body: %w", err)
	}
	return b, nil
}
