package storage

import (
	"context"
	"time"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations. CreateUser assigns the user's ID.
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]*model.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	// ExpireSession invalidates a session; expiring an unknown token is a no-op.
	ExpireSession(ctx context.Context, token string) error
	CountActiveSessions(ctx context.Context, now time.Time) (int, error)

	// Energy transaction log
	AppendTransaction(ctx context.Context, tx *model.EnergyTransaction) error
	ListTransactions(ctx context.Context, userID int64) ([]*model.EnergyTransaction, error)
	// SummarizeTransactions aggregates the log by transaction type.
	SummarizeTransactions(ctx context.Context) ([]model.TransactionSummary, error)
}
