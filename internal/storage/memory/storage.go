package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	nextUserID    int64
	users         map[int64]*model.User
	emailIndex    map[string]int64
	usernameIndex map[string]int64
	sessions      map[string]*model.Session
	transactions  []*model.EnergyTransaction
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		nextUserID:    1,
		users:         make(map[int64]*model.User),
		emailIndex:    make(map[string]int64),
		usernameIndex: make(map[string]int64),
		sessions:      make(map[string]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emailIndex[user.Email]; ok {
		return model.ErrUserExists
	}
	if _, ok := s.usernameIndex[user.Username]; ok {
		return model.ErrUserExists
	}

	user.ID = s.nextUserID
	s.nextUserID++

	u := *user
	s.users[u.ID] = &u
	s.emailIndex[u.Email] = u.ID
	s.usernameIndex[u.Username] = u.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	u := *user
	s.users[u.ID] = &u
	return nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}

	// Newest first; IDs are monotonic so they break creation-time ties
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.sessions[sess.Token] = &sess
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := *session
	return &sess, nil
}

func (s *Storage) ExpireSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *Storage) CountActiveSessions(ctx context.Context, now time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, session := range s.sessions {
		if session.Active(now) {
			count++
		}
	}
	return count, nil
}

// Energy transaction log

func (s *Storage) AppendTransaction(ctx context.Context, tx *model.EnergyTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *tx
	s.transactions = append(s.transactions, &t)
	return nil
}

func (s *Storage) ListTransactions(ctx context.Context, userID int64) ([]*model.EnergyTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []*model.EnergyTransaction
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			t := *tx
			txs = append(txs, &t)
		}
	}
	return txs, nil
}

func (s *Storage) SummarizeTransactions(ctx context.Context) ([]model.TransactionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byType := make(map[string]*model.TransactionSummary)
	var order []string
	for _, tx := range s.transactions {
		summary, ok := byType[tx.Type]
		if !ok {
			summary = &model.TransactionSummary{Type: tx.Type}
			byType[tx.Type] = summary
			order = append(order, tx.Type)
		}
		summary.Count++
		summary.Total += tx.Amount
	}

	summaries := make([]model.TransactionSummary, 0, len(order))
	for _, txType := range order {
		summaries = append(summaries, *byType[txType])
	}
	return summaries, nil
}
