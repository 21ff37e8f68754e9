// Package response defines the success payloads served by the auth and admin
// endpoints and parsed by the client SDK.
package response

import (
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
)

// Auth is the response for register and login: a fresh token plus the user.
type Auth struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Verify is the response for a successful token verification.
type Verify struct {
	User model.User `json:"user"`
}

// Success is the opaque acknowledgement for mutations without a richer payload.
type Success struct {
	Success bool `json:"success"`
}

// Users is the admin user listing.
type Users struct {
	Users []model.User `json:"users"`
}

// EnergyUpdate acknowledges an energy mutation with the resulting balance.
type EnergyUpdate struct {
	Success   bool `json:"success"`
	NewEnergy int  `json:"newEnergy"`
}

// InfiniteEnergyUpdate acknowledges an infinite-energy toggle with the new
// flag value.
type InfiniteEnergyUpdate struct {
	Success          bool `json:"success"`
	IsInfiniteEnergy bool `json:"isInfiniteEnergy"`
}

// Stats is the aggregate counters payload; semantics are opaque to clients.
type Stats = model.Stats
