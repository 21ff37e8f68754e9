package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/dependencies/clock"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/storage"
)

// Errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInfiniteEnergy = errors.New("user has infinite energy")
)

// Service implements the privileged operations behind the admin endpoint:
// aggregate stats, the user listing, and energy mutations.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new admin service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Stats computes the aggregate counters. Energy totals and the average
// exclude infinite-energy users, whose numeric balance is not authoritative.
func (s *Service) Stats(ctx context.Context) (*model.Stats, error) {
	totalUsers, err := s.storage.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	activeSessions, err := s.storage.CountActiveSessions(ctx, s.clock.Now())
	if err != nil {
		return nil, err
	}

	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	totalEnergy := 0
	counted := 0
	for _, user := range users {
		if user.IsInfiniteEnergy {
			continue
		}
		totalEnergy += user.Energy
		counted++
	}

	avgEnergy := 0.0
	if counted > 0 {
		avgEnergy = math.Round(float64(totalEnergy)/float64(counted)*100) / 100
	}

	transactions, err := s.storage.SummarizeTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []model.TransactionSummary{}
	}

	return &model.Stats{
		TotalUsers:     totalUsers,
		ActiveSessions: activeSessions,
		TotalEnergy:    totalEnergy,
		AvgEnergy:      avgEnergy,
		Transactions:   transactions,
	}, nil
}

// Users returns every user, newest first.
func (s *Service) Users(ctx context.Context) ([]*model.User, error) {
	return s.storage.ListUsers(ctx)
}

// AdjustEnergy applies a signed delta to a user's balance, clamping the
// result at zero, and records the mutation in the transaction log. Users
// with the infinite-energy flag are rejected.
func (s *Service) AdjustEnergy(ctx context.Context, userID int64, amount int, txType string) (int, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	if user.IsInfiniteEnergy {
		return 0, ErrInfiniteEnergy
	}

	newEnergy := user.Energy + amount
	if newEnergy < 0 {
		newEnergy = 0
	}
	user.Energy = newEnergy

	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return 0, err
	}

	tx := &model.EnergyTransaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: fmt.Sprintf("Admin adjustment: %d", amount),
		CreatedAt:   s.clock.Now(),
	}
	if err := s.storage.AppendTransaction(ctx, tx); err != nil {
		return 0, err
	}

	s.logger.Info("energy adjusted",
		slog.Int64("user_id", userID),
		slog.Int("amount", amount),
		slog.Int("new_energy", newEnergy),
	)
	return newEnergy, nil
}

// ToggleInfiniteEnergy flips the user's infinite-energy flag and returns the
// new value.
func (s *Service) ToggleInfiniteEnergy(ctx context.Context, userID int64) (bool, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	user.IsInfiniteEnergy = !user.IsInfiniteEnergy
	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return false, err
	}

	s.logger.Info("infinite energy toggled",
		slog.Int64("user_id", userID),
		slog.Bool("enabled", user.IsInfiniteEnergy),
	)
	return user.IsInfiniteEnergy, nil
}
