// Package request defines the action-discriminated request envelopes for the
// auth and admin endpoints. Both endpoints are POST-only; the Action field
// selects the operation.
package request

// Action discriminates operations within an endpoint
type Action string

// Auth endpoint actions
const (
	ActionRegister       Action = "register"
	ActionLogin          Action = "login"
	ActionLogout         Action = "logout"
	ActionVerify         Action = "verify"
	ActionUpdatePassword Action = "update_password"
)

// Admin endpoint actions
const (
	ActionGetStats             Action = "get_stats"
	ActionGetUsers             Action = "get_users"
	ActionUpdateEnergy         Action = "update_energy"
	ActionToggleInfiniteEnergy Action = "toggle_infinite_energy"
)

// Auth is the request body for the auth endpoint. Which fields are required
// depends on the action; unused fields are omitted from the wire.
type Auth struct {
	Action      Action `json:"action"`
	Email       string `json:"email,omitempty"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	Token       string `json:"token,omitempty"`
	OldPassword string `json:"oldPassword,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

// Admin is the request body for the admin endpoint. The bearer token travels
// in the X-Auth-Token header, not in the body.
type Admin struct {
	Action Action `json:"action"`
	UserID int64  `json:"userId,omitempty"`
	// Amount is a pointer so that explicit zero and negative deltas survive
	// serialization.
	Amount *int   `json:"amount,omitempty"`
	Type   string `json:"type,omitempty"`
}
