package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newUser(email, username string, createdAt time.Time) *model.User {
	return &model.User{
		Email:        email,
		Username:     username,
		Energy:       100,
		PasswordHash: "hash",
		CreatedAt:    createdAt,
	}
}

// User tests

func (s *StorageSuite) TestCreateUserAssignsSequentialIDs() {
	alice := s.newUser("alice@example.com", "alice", time.Now())
	bob := s.newUser("bob@example.com", "bob", time.Now())

	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))
	s.Require().NoError(s.storage.CreateUser(s.ctx, bob))

	s.Equal(int64(1), alice.ID)
	s.Equal(int64(2), bob.ID)
}

func (s *StorageSuite) TestCreateUserRejectsDuplicateEmail() {
	s.Require().NoError(s.storage.CreateUser(s.ctx, s.newUser("alice@example.com", "alice", time.Now())))

	err := s.storage.CreateUser(s.ctx, s.newUser("alice@example.com", "alice2", time.Now()))
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *StorageSuite) TestCreateUserRejectsDuplicateUsername() {
	s.Require().NoError(s.storage.CreateUser(s.ctx, s.newUser("alice@example.com", "alice", time.Now())))

	err := s.storage.CreateUser(s.ctx, s.newUser("alice2@example.com", "alice", time.Now()))
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *StorageSuite) TestGetUserRoundTrip() {
	alice := s.newUser("alice@example.com", "alice", time.Now())
	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))

	retrieved, err := s.storage.GetUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal("alice@example.com", retrieved.Email)
	s.Equal("alice", retrieved.Username)
	s.Equal(100, retrieved.Energy)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 999)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByEmail() {
	alice := s.newUser("alice@example.com", "alice", time.Now())
	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))

	retrieved, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(alice.ID, retrieved.ID)

	_, err = s.storage.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	alice := s.newUser("alice@example.com", "alice", time.Now())
	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(alice.ID, retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUser() {
	alice := s.newUser("alice@example.com", "alice", time.Now())
	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))

	alice.Energy = 42
	alice.IsInfiniteEnergy = true
	s.Require().NoError(s.storage.UpdateUser(s.ctx, alice))

	retrieved, err := s.storage.GetUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(42, retrieved.Energy)
	s.True(retrieved.IsInfiniteEnergy)
}

func (s *StorageSuite) TestUpdateUserNotFound() {
	ghost := s.newUser("ghost@example.com", "ghost", time.Now())
	ghost.ID = 999

	err := s.storage.UpdateUser(s.ctx, ghost)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestStoredUsersAreIsolatedFromCallers() {
	alice := s.newUser("alice@example.com", "alice", time.Now())
	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))

	// Mutating the caller's copy must not leak into storage
	alice.Energy = 0

	retrieved, err := s.storage.GetUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(100, retrieved.Energy)
}

func (s *StorageSuite) TestListUsersNewestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	alice := s.newUser("alice@example.com", "alice", base)
	bob := s.newUser("bob@example.com", "bob", base.Add(time.Hour))

	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))
	s.Require().NoError(s.storage.CreateUser(s.ctx, bob))

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("bob", users[0].Username)
	s.Equal("alice", users[1].Username)
}

func (s *StorageSuite) TestListUsersBreaksTiesByID() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	alice := s.newUser("alice@example.com", "alice", base)
	bob := s.newUser("bob@example.com", "bob", base)

	s.Require().NoError(s.storage.CreateUser(s.ctx, alice))
	s.Require().NoError(s.storage.CreateUser(s.ctx, bob))

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("bob", users[0].Username)
}

func (s *StorageSuite) TestCountUsers() {
	count, err := s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	s.Require().NoError(s.storage.CreateUser(s.ctx, s.newUser("alice@example.com", "alice", time.Now())))

	count, err = s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	session := &model.Session{
		Token:     "token-1",
		UserID:    1,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "token-1")
	s.Require().NoError(err)
	s.Equal(int64(1), retrieved.UserID)
	s.Equal(session.ExpiresAt, retrieved.ExpiresAt)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestExpireSession() {
	now := time.Now()
	session := &model.Session{Token: "token-1", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.Require().NoError(s.storage.ExpireSession(s.ctx, "token-1"))

	_, err := s.storage.GetSession(s.ctx, "token-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestExpireUnknownSessionIsNoOp() {
	s.NoError(s.storage.ExpireSession(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestCountActiveSessions() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	live := &model.Session{Token: "live", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	dead := &model.Session{Token: "dead", UserID: 2, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}

	s.Require().NoError(s.storage.SaveSession(s.ctx, live))
	s.Require().NoError(s.storage.SaveSession(s.ctx, dead))

	count, err := s.storage.CountActiveSessions(s.ctx, now)
	s.Require().NoError(err)
	s.Equal(1, count)
}

// Transaction tests

func (s *StorageSuite) newTransaction(id string, userID int64, amount int, txType string) *model.EnergyTransaction {
	return &model.EnergyTransaction{
		ID:        id,
		UserID:    userID,
		Amount:    amount,
		Type:      txType,
		CreatedAt: time.Now(),
	}
}

func (s *StorageSuite) TestListTransactionsFiltersByUser() {
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, s.newTransaction("tx-1", 1, 50, "admin_adjustment")))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, s.newTransaction("tx-2", 2, 30, "admin_adjustment")))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, s.newTransaction("tx-3", 1, -20, "admin_adjustment")))

	txs, err := s.storage.ListTransactions(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	s.Equal("tx-1", txs[0].ID)
	s.Equal("tx-3", txs[1].ID)
}

func (s *StorageSuite) TestSummarizeTransactionsGroupsByType() {
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, s.newTransaction("tx-1", 1, 50, "admin_adjustment")))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, s.newTransaction("tx-2", 1, -20, "admin_adjustment")))
	s.Require().NoError(s.storage.AppendTransaction(s.ctx, s.newTransaction("tx-3", 2, 10, "bonus")))

	summaries, err := s.storage.SummarizeTransactions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)

	s.Equal("admin_adjustment", summaries[0].Type)
	s.Equal(2, summaries[0].Count)
	s.Equal(30, summaries[0].Total)

	s.Equal("bonus", summaries[1].Type)
	s.Equal(1, summaries[1].Count)
	s.Equal(10, summaries[1].Total)
}

func (s *StorageSuite) TestSummarizeTransactionsEmpty() {
	summaries, err := s.storage.SummarizeTransactions(s.ctx)
	s.Require().NoError(err)
	s.Empty(summaries)
}
