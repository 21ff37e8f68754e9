package model

import "time"

// User is the identity and entitlement record shared by the API and the client SDK.
// JSON field names follow the wire contract used by both endpoints.
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Username         string     `json:"username"`
	Energy           int        `json:"energy"`
	IsInfiniteEnergy bool       `json:"isInfiniteEnergy"`
	IsAdmin          bool       `json:"isAdmin"`
	CreatedAt        time.Time  `json:"createdAt,omitempty"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`

	// PasswordHash is server-side only and never serialized.
	PasswordHash string `json:"-"`
}

// Session is a server-issued bearer credential with server-driven expiry.
// The token is opaque to clients.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Active reports whether the session is still valid at the given time.
func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// EnergyTransaction records a single energy balance mutation.
type EnergyTransaction struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	Amount      int       `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionSummary aggregates transactions of one type.
type TransactionSummary struct {
	Type  string `json:"transaction_type"`
	Count int    `json:"count"`
	Total int    `json:"total"`
}

// Stats is the aggregate counter payload served by the admin endpoint.
type Stats struct {
	TotalUsers     int                  `json:"totalUsers"`
	ActiveSessions int                  `json:"activeSessions"`
	TotalEnergy    int                  `json:"totalEnergy"`
	AvgEnergy      float64              `json:"avgEnergy"`
	Transactions   []TransactionSummary `json:"transactions"`
}
