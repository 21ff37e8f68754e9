// Package session holds the client-side session state: the bearer token and the
// last verified user snapshot. A store is the single place the auth client writes
// to; everything else only reads.
package session

import "github.com/pr-poehali-dev/site-clone-poehali/internal/model"

// Store persists the (token, user) pair that represents the current session.
//
// Contract:
//   - Save overwrites any prior session with both values together.
//   - Clear removes both values and is safe to call on an empty store.
//   - Token and User never fail: a missing or corrupt record reads as absent
//     (empty token / nil user), and a corrupt user record clears the store.
type Store interface {
	Save(token string, user *model.User) error
	Clear() error
	Token() string
	User() *model.User
}
