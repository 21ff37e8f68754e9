package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	// Uniqueness checks against the secondary indexes
	for _, key := range []string{emailIndexKey(user.Email), usernameIndexKey(user.Username)} {
		exists, err := s.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return model.ErrUserExists
		}
	}

	id, err := s.client.Incr(ctx, userSeqKey()).Result()
	if err != nil {
		return err
	}
	user.ID = id

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), user.ID, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), user.ID, 0)
	pipe.ZAdd(ctx, userIndexKey(), redis.Z{
		Score:  float64(user.CreatedAt.UnixNano()),
		Member: user.ID,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUserByIndex(ctx, emailIndexKey(email))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUserByIndex(ctx, usernameIndexKey(username))
}

func (s *Storage) getUserByIndex(ctx context.Context, indexKey string) (*model.User, error) {
	id, err := s.client.Get(ctx, indexKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	exists, err := s.client.Exists(ctx, userKey(user.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrUserNotFound
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	// Newest first via the creation-time sorted set
	ids, err := s.client.ZRevRange(ctx, userIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, err
		}
		user, err := s.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	count, err := s.client.ZCard(ctx, userIndexKey()).Result()
	return int(count), err
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.Token), data, ttl)
	pipe.SAdd(ctx, sessionIndexKey(), session.Token)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) ExpireSession(ctx context.Context, token string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, sessionIndexKey(), token)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) CountActiveSessions(ctx context.Context, now time.Time) (int, error) {
	tokens, err := s.client.SMembers(ctx, sessionIndexKey()).Result()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, token := range tokens {
		session, err := s.GetSession(ctx, token)
		if err != nil {
			if errors.Is(err, model.ErrSessionNotFound) {
				// Key expired under us; prune the stale index entry
				_ = s.client.SRem(ctx, sessionIndexKey(), token).Err()
				continue
			}
			return 0, err
		}
		if session.Active(now) {
			count++
		}
	}
	return count, nil
}

// Energy transaction log

func (s *Storage) AppendTransaction(ctx context.Context, tx *model.EnergyTransaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, transactionLogKey(), data)
	pipe.RPush(ctx, userTransactionsKey(tx.UserID), data)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListTransactions(ctx context.Context, userID int64) ([]*model.EnergyTransaction, error) {
	return s.readTransactionList(ctx, userTransactionsKey(userID))
}

func (s *Storage) SummarizeTransactions(ctx context.Context) ([]model.TransactionSummary, error) {
	txs, err := s.readTransactionList(ctx, transactionLogKey())
	if err != nil {
		return nil, err
	}

	byType := make(map[string]*model.TransactionSummary)
	var order []string
	for _, tx := range txs {
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

func (s *Storage) readTransactionList(ctx context.Context, key string) ([]*model.EnergyTransaction, error) {
	items, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	txs := make([]*model.EnergyTransaction, 0, len(items))
	for _, item := range items {
		var tx model.EnergyTransaction
		if err := json.Unmarshal([]byte(item), &tx); err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}
	return txs, nil
}
