package rpc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/rpcbridge/pkg/httpx"
	"github.com/aussiebroadwan/rpcbridge/pkg/slogx"
)

// Mount registers one route per endpoint on mux, at
// POST /rpc/{namespace}/{name}/v{version}.
//
// Per request: validate the body against the body schema (400 before the
// handler ever runs), resolve the credential pair for authenticated
// endpoints (403 on absent or malformed header, resolver errors propagated
// verbatim), invoke the handler, validate the result against the response
// schema, reply 200. The dispatcher keeps no state between calls and
// implements no retries or timeouts; an abandoned caller simply never reads
// the response.
func Mount(mux *http.ServeMux, registries ...*Registry) {
	for _, reg := range registries {
		for _, e := range reg.Endpoints() {
			pattern := fmt.Sprintf("POST /rpc/%s/%s/v%d", reg.Namespace(), e.Name, e.Version)
			mux.Handle(pattern, endpointHandler(e))
		}
	}
}

func endpointHandler(e Endpoint) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := slogx.FromContext(ctx)

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			httpx.WriteError(w, httpx.BadRequestf("failed to read request body"))
			return
		}

		if err := e.Body.ValidateJSON(raw); err != nil {
			httpx.WriteError(w, httpx.BadRequestf("body: %v", err))
			return
		}

		var result any
		switch access := e.Access.(type) {
		case Anonymous:
			result, err = access.Handle(ctx, raw)

		case Authenticated:
			creds, credErr := httpx.ParseCredentials(r)
			if credErr != nil {
				httpx.WriteError(w, credErr)
				return
			}

			caller, authErr := access.Resolve(ctx, creds.UserID, creds.Secret)
			if authErr != nil {
				httpx.WriteError(w, authErr)
				return
			}

			result, err = access.Handle(ctx, caller, raw)

		default:
			log.Error("endpoint has unknown access variant", "endpoint", e.Name, "version", e.Version)
			httpx.WriteError(w, httpx.ErrServer)
			return
		}

		if err != nil {
			if _, ok := err.(*httpx.Error); !ok {
				log.Error("handler failed", "endpoint", e.Name, "version", e.Version, "err", err)
			}
			httpx.WriteError(w, err)
			return
		}

		out, err := json.Marshal(result)
		if err != nil {
			log.Error("failed to encode response", "endpoint", e.Name, "version", e.Version, "err", err)
			httpx.WriteError(w, httpx.ErrServer)
			return
		}

		// A response that fails its own schema is a handler bug, not a
		// caller error.
		if err := e.Resp.ValidateJSON(out); err != nil {
			log.Error("response failed schema validation", "endpoint", e.Name, "version", e.Version, "err", err)
			httpx.WriteError(w, httpx.ErrServer)
			return
		}

		httpx.NoCache(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	})
}
