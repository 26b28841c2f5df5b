package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aussiebroadwan/rpcbridge/internal/bridge/service"
	"github.com/aussiebroadwan/rpcbridge/pkg/httpx"
	"github.com/aussiebroadwan/rpcbridge/pkg/slogx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signinRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler serves the session endpoints under /api/v0.
type AuthHandler struct {
	AuthService *service.AuthService
}

func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, httpx.BadRequestf("invalid JSON body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.WriteError(w, httpx.BadRequestf("%v", err))
		return
	}

	resp, err := h.AuthService.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNameTaken) {
			httpx.WriteError(w, httpx.ErrConflict)
			return
		}
		log.Error("signup failed", "err", err)
		httpx.WriteError(w, httpx.ErrServer)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, httpx.BadRequestf("invalid JSON body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.WriteError(w, httpx.BadRequestf("%v", err))
		return
	}

	resp, err := h.AuthService.Signin(ctx, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, httpx.ErrUnauthorized)
			return
		}
		log.Error("signin failed", "err", err)
		httpx.WriteError(w, httpx.ErrServer)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	creds, err := httpx.ParseCredentials(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.AuthService.Logout(ctx, creds.UserID, creds.Secret); err != nil {
		log.Error("logout failed", "err", err)
		httpx.WriteError(w, httpx.ErrServer)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
