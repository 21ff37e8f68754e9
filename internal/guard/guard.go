// Package guard implements the dashboard entry gate: verify the stored
// session once, classify the caller, and preload admin data for privileged
// users.
package guard

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/client"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
)

// State is the guard's position in its lifecycle.
type State int

const (
	// StateChecking is the initial state while verification is in flight.
	StateChecking State = iota
	// StateAuthenticated means the session verified successfully.
	StateAuthenticated
	// StateUnauthenticated means there is no valid session; callers should
	// navigate away.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Result is the outcome of one guard run.
type Result struct {
	State State
	User  *model.User

	// Stats and Users are populated only for admin sessions whose bootstrap
	// succeeded.
	Stats *model.Stats
	Users []model.User

	// AdminErr reports an admin bootstrap failure. It never demotes State:
	// the session stays authenticated with the admin data left empty.
	AdminErr error
}

// Guard gates entry using the auth client and, for admins, preloads the
// admin panel data.
type Guard struct {
	auth   *client.AuthClient
	admin  *client.AdminClient
	logger *slog.Logger
}

// New creates a guard over the given clients. logger may be nil.
func New(auth *client.AuthClient, admin *client.AdminClient, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Guard{auth: auth, admin: admin, logger: logger}
}

// Run verifies the session exactly once and returns the resulting state.
// For admin users it fetches stats and the user list concurrently and waits
// for both; if either fetch fails the combined bootstrap fails fast and the
// error is reported in Result.AdminErr.
func (g *Guard) Run(ctx context.Context) Result {
	user := g.auth.Verify(ctx)
	if user == nil {
		return Result{State: StateUnauthenticated}
	}

	result := Result{State: StateAuthenticated, User: user}
	if !user.IsAdmin {
		return result
	}

	var (
		stats *model.Stats
		users []model.User
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s, err := g.admin.GetStats(egCtx)
		if err != nil {
			return err
		}
		stats = s
		return nil
	})
	eg.Go(func() error {
		u, err := g.admin.GetUsers(egCtx)
		if err != nil {
			return err
		}
		users = u
		return nil
	})

	if err := eg.Wait(); err != nil {
		g.logger.Warn("admin bootstrap failed", slog.String("error", err.Error()))
		result.AdminErr = err
		return result
	}

	result.Stats = stats
	result.Users = users
	return result
}
