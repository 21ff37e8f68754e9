package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/dependencies/clock"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserExists         = errors.New("email or username already exists")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrTokenRequired      = errors.New("token is required")
)

// StartingEnergy is granted to every new account.
const StartingEnergy = 100

// Config holds configuration for the auth service
type Config struct {
	SessionDuration   time.Duration
	MinPasswordLength int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration:   30 * 24 * time.Hour,
		MinPasswordLength: 6,
	}
}

// Service handles accounts and session lifecycle. Sessions are opaque random
// tokens persisted in storage with server-driven expiry.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new auth service
func New(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.MinPasswordLength == 0 {
		cfg.MinPasswordLength = DefaultConfig().MinPasswordLength
	}
	return &Service{
		storage: store,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// Register creates an account with the starting energy allotment and issues
// a fresh session.
func (s *Service) Register(ctx context.Context, email, username, password string) (*model.User, *model.Session, error) {
	if len(password) < s.cfg.MinPasswordLength {
		return nil, nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		Energy:       StartingEnergy,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return nil, nil, ErrUserExists
		}
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", username),
	)
	return user, session, nil
}

// Login checks credentials, records the login time, and issues a fresh
// session.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	user.LastLogin = &now
	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout invalidates a session. Expiring an unknown token succeeds; the
// outcome is the same.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	return s.storage.ExpireSession(ctx, token)
}

// Verify resolves a token to its user, rejecting unknown and expired
// sessions.
func (s *Service) Verify(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !session.Active(s.clock.Now()) {
		return nil, ErrInvalidToken
	}

	user, err := s.storage.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// UpdatePassword rotates a password after checking the old one. Existing
// sessions stay valid.
func (s *Service) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if len(newPassword) < s.cfg.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password updated", slog.Int64("user_id", user.ID))
	return nil
}

// EnsureAdmin creates or promotes the bootstrap admin account. Existing
// accounts get their password reset and the admin flag set; missing ones are
// created with it.
func (s *Service) EnsureAdmin(ctx context.Context, email, username, password string) error {
	if len(password) < s.cfg.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			return err
		}
		user = &model.User{
			Email:        email,
			Username:     username,
			Energy:       StartingEnergy,
			IsAdmin:      true,
			PasswordHash: string(hash),
			CreatedAt:    s.clock.Now(),
		}
		if err := s.storage.CreateUser(ctx, user); err != nil {
			return err
		}
		s.logger.Info("admin account created", slog.String("email", email))
		return nil
	}

	user.IsAdmin = true
	user.PasswordHash = string(hash)
	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return err
	}
	s.logger.Info("admin account updated", slog.String("email", email))
	return nil
}

// createSession issues an opaque random token with the configured lifetime.
func (s *Service) createSession(ctx context.Context, userID int64) (*model.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// generateToken produces a 32-byte URL-safe random token
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("token generation: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
