package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/request"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/response"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/session"
)

// Operation-specific fallback messages used when the remote supplies none
const (
	fallbackRegister       = "Registration failed"
	fallbackLogin          = "Login failed"
	fallbackLogout         = "Logout failed"
	fallbackVerify         = "Verification failed"
	fallbackUpdatePassword = "Password update failed"
)

// AuthClient talks to the auth endpoint and owns all writes to the session
// store. It is safe for concurrent use to the extent the store is.
type AuthClient struct {
	authURL    string
	store      session.Store
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAuthClient creates an auth client bound to the given session store.
func NewAuthClient(cfg Config, store session.Store) *AuthClient {
	return &AuthClient{
		authURL:    cfg.AuthURL,
		store:      store,
		httpClient: cfg.httpClient(),
		logger:     cfg.logger(),
	}
}

// Store exposes the underlying session store for read-side consumers.
func (c *AuthClient) Store() session.Store {
	return c.store
}

// ValidateRegistration applies the local pre-flight checks for registration.
// Failures are ValidationErrors and never reach the network.
func ValidateRegistration(password, confirm string) error {
	if password != confirm {
		return &ValidationError{Message: "Passwords do not match"}
	}
	if len(password) < 6 {
		return &ValidationError{Message: "Password must be at least 6 characters"}
	}
	return nil
}

// Register creates an account and saves the issued session. The store is
// untouched on failure.
func (c *AuthClient) Register(ctx context.Context, email, username, password string) (*response.Auth, error) {
	if email == "" || username == "" || password == "" {
		return nil, &ValidationError{Message: "Email, username and password are required"}
	}

	var res response.Auth
	req := request.Auth{Action: request.ActionRegister, Email: email, Username: username, Password: password}
	if err := c.post(ctx, req, &res, fallbackRegister); err != nil {
		return nil, err
	}

	if err := c.store.Save(res.Token, &res.User); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login authenticates and saves the issued session. The store is untouched
// on failure.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*response.Auth, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Message: "Email and password are required"}
	}

	var res response.Auth
	req := request.Auth{Action: request.ActionLogin, Email: email, Password: password}
	if err := c.post(ctx, req, &res, fallbackLogin); err != nil {
		return nil, err
	}

	if err := c.store.Save(res.Token, &res.User); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout invalidates the session remotely (best effort) and always clears
// the local store. With no stored token it performs no network call.
// The only error it can return comes from clearing the store.
func (c *AuthClient) Logout(ctx context.Context) error {
	if token := c.store.Token(); token != "" {
		req := request.Auth{Action: request.ActionLogout, Token: token}
		if err := c.post(ctx, req, nil, fallbackLogout); err != nil {
			c.logger.Debug("remote logout failed", slog.String("error", err.Error()))
		}
	}
	return c.store.Clear()
}

// Verify refreshes the cached user for the stored token. It never returns an
// error: nil means not authenticated. On any failure, remote or transport,
// the session is cleared before returning nil, so callers can use Verify
// unconditionally as a gate.
func (c *AuthClient) Verify(ctx context.Context) *model.User {
	token := c.store.Token()
	if token == "" {
		return nil
	}

	var res response.Verify
	req := request.Auth{Action: request.ActionVerify, Token: token}
	if err := c.post(ctx, req, &res, fallbackVerify); err != nil {
		c.logger.Debug("verify failed", slog.String("error", err.Error()))
		if err := c.Logout(ctx); err != nil {
			c.logger.Debug("session clear failed", slog.String("error", err.Error()))
		}
		return nil
	}

	// Token stays as issued; only the cached user snapshot is refreshed
	if err := c.store.Save(token, &res.User); err != nil {
		c.logger.Debug("session refresh failed", slog.String("error", err.Error()))
	}
	return &res.User
}

// UpdatePassword rotates the account password. The local session is not
// touched in either outcome.
func (c *AuthClient) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if email == "" || oldPassword == "" || newPassword == "" {
		return &ValidationError{Message: "Email, old password and new password are required"}
	}

	req := request.Auth{
		Action:      request.ActionUpdatePassword,
		Email:       email,
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}
	return c.post(ctx, req, nil, fallbackUpdatePassword)
}

func (c *AuthClient) post(ctx context.Context, req request.Auth, result any, fallback string) error {
	return postJSON(ctx, c.httpClient, c.authURL, nil, req, result, fallback)
}
