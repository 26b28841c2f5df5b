package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rpcbridge/internal/bridge/domain"
	"github.com/aussiebroadwan/rpcbridge/internal/bridge/service"
	"github.com/aussiebroadwan/rpcbridge/internal/bridge/store/drivers/sqlite"
	"github.com/aussiebroadwan/rpcbridge/pkg/rpc"
	"github.com/aussiebroadwan/rpcbridge/pkg/rpc/schema"
	"github.com/aussiebroadwan/rpcbridge/pkg/slogx"
)

func newTestServer(t *testing.T, registries ...*rpc.Registry) *httptest.Server {
	srv, _ := newTestServerWithAuth(t, func(*service.AuthService) []*rpc.Registry {
		return registries
	})
	return srv
}

// newTestServerWithAuth lets the test build registries against the server's
// own auth service, which authenticated endpoints need for their resolver.
func newTestServerWithAuth(t *testing.T, build func(auth *service.AuthService) []*rpc.Registry) (*httptest.Server, *service.AuthService) {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.ReconcileIndexes(context.Background(), slogx.Discard()))

	auth := &service.AuthService{Store: st}

	router := NewRouter("test", st, slogx.Discard())
	router.AuthService = auth
	router.Registries = build(auth)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, auth
}

func post(t *testing.T, url, authHeader, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeAuthResponse(t *testing.T, resp *http.Response) domain.AuthResponse {
	t.Helper()

	var out domain.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHandleSignup(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/signup", "",
			`{"name":"alice","email":"alice@example.com","password":"hunter2"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

		out := decodeAuthResponse(t, resp)
		assert.NotEmpty(t, out.ID)
		assert.Equal(t, "alice", out.Name)
		assert.Equal(t, "alice@example.com", out.Email)
		assert.NotEmpty(t, out.TempPassword)
	})

	t.Run("duplicate name", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/signup", "",
			`{"name":"alice","email":"other@example.com","password":"hunter2"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("invalid email", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/signup", "",
			`{"name":"bob","email":"not-an-email","password":"hunter2"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/signup", "", `{"name":"bob"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/signup", "", `{`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleSignin(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := post(t, srv.URL+"/api/v0/signup", "",
		`{"name":"alice","email":"alice@example.com","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	signup := decodeAuthResponse(t, resp)

	t.Run("success", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/signin", "",
			`{"name":"alice","password":"hunter2"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		out := decodeAuthResponse(t, resp)
		assert.Equal(t, signup.ID, out.ID)
		assert.NotEqual(t, signup.TempPassword, out.TempPassword)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/signin", "",
			`{"name":"alice","password":"wrong"}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown name", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/signin", "",
			`{"name":"nobody","password":"hunter2"}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestHandleLogout(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := post(t, srv.URL+"/api/v0/signup", "",
		`{"name":"alice","email":"alice@example.com","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	signup := decodeAuthResponse(t, resp)

	t.Run("missing header", func(t *testing.T) {
		resp := post(t, srv.URL+"/api/v0/logout", "", `{}`)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("success and idempotent", func(t *testing.T) {
		auth := signup.ID + ":" + signup.TempPassword

		resp := post(t, srv.URL+"/api/v0/logout", auth, `{}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = post(t, srv.URL+"/api/v0/logout", auth, `{}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestHealthProbes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "ok", out["status"], path)
	}
}

func TestRouterMountsRegistries(t *testing.T) {
	t.Parallel()

	reg := rpc.NewRegistry("test").Add(rpc.Anon("echo", 1,
		schema.Object(schema.F("in", schema.String())),
		schema.Object(schema.F("out", schema.String())),
		func(ctx context.Context, body struct {
			In string `json:"in"`
		}) (map[string]string, error) {
			return map[string]string{"out": body.In}, nil
		},
	))
	srv := newTestServer(t, reg)

	resp := post(t, srv.URL+"/rpc/test/echo/v1", "", `{"in":"hi"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "hi", out["out"])
}
