package redis

import "fmt"

// Key prefix for all persisted data
const keyPrefix = "poehali"

// userSeqKey returns the Redis key for the user ID sequence counter
func userSeqKey() string {
	return fmt.Sprintf("%s:seq:user", keyPrefix)
}

// userKey returns the Redis key for a User
func userKey(id int64) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// userIndexKey returns the Redis key for the sorted set of all user IDs,
// scored by creation time
func userIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// emailIndexKey returns the Redis key for the email -> user ID index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// usernameIndexKey returns the Redis key for the username -> user ID index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// sessionIndexKey returns the Redis key for the SET of live session tokens
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}

// transactionLogKey returns the Redis key for the global transaction log
func transactionLogKey() string {
	return fmt.Sprintf("%s:tx:log", keyPrefix)
}

// userTransactionsKey returns the Redis key for a user's transaction list
func userTransactionsKey(userID int64) string {
	return fmt.Sprintf("%s:tx:user:%d", keyPrefix, userID)
}
