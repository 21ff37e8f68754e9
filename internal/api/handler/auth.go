package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/apierr"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/request"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/response"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/services/auth"
)

// AuthHandler serves the action-discriminated auth endpoint
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Handle dispatches POST /api/auth on the action field
func (h *AuthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req request.Auth
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewBadRequestError("Invalid request body"))
		return
	}

	switch req.Action {
	case request.ActionRegister:
		h.register(w, r, req)
	case request.ActionLogin:
		h.login(w, r, req)
	case request.ActionLogout:
		h.logout(w, r, req)
	case request.ActionVerify:
		h.verify(w, r, req)
	case request.ActionUpdatePassword:
		h.updatePassword(w, r, req)
	default:
		apierr.WriteError(w, apierr.NewBadRequestError("Invalid action"))
	}
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, req request.Auth) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewBadRequestError("Email, username and password are required"))
		return
	}

	user, session, err := h.authService.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Auth{Token: session.Token, User: *user})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, req request.Auth) {
	if req.Email == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewBadRequestError("Email and password are required"))
		return
	}

	user, session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Auth{Token: session.Token, User: *user})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request, req request.Auth) {
	if err := h.authService.Logout(r.Context(), req.Token); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Success{Success: true})
}

func (h *AuthHandler) verify(w http.ResponseWriter, r *http.Request, req request.Auth) {
	user, err := h.authService.Verify(r.Context(), req.Token)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Verify{User: *user})
}

func (h *AuthHandler) updatePassword(w http.ResponseWriter, r *http.Request, req request.Auth) {
	if req.Email == "" || req.OldPassword == "" || req.NewPassword == "" {
		apierr.WriteError(w, apierr.NewBadRequestError("Email, old password and new password are required"))
		return
	}

	if err := h.authService.UpdatePassword(r.Context(), req.Email, req.OldPassword, req.NewPassword); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Success{Success: true})
}
