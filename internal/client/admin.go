package client

import (
	"context"
	"net/http"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/request"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/response"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/session"
)

// DefaultTransactionType is the transaction type recorded for admin-driven
// energy mutations.
const DefaultTransactionType = "admin_adjustment"

// Admin endpoint fallback messages
const (
	fallbackStats          = "Failed to fetch stats"
	fallbackUsers          = "Failed to fetch users"
	fallbackUpdateEnergy   = "Failed to update energy"
	fallbackToggleInfinite = "Failed to toggle infinite energy"
)

// AdminClient issues privileged requests against the admin endpoint. Every
// request carries the currently stored token in the X-Auth-Token header; if
// no token is stored the header is sent as an empty string. Authorization is
// enforced remotely; the client performs no local admin check.
//
// Mutations return opaque acknowledgements; callers are expected to re-fetch
// stats and users to resynchronize rather than patch local state.
type AdminClient struct {
	adminURL   string
	store      session.Store
	httpClient *http.Client
}

// NewAdminClient creates an admin client reading tokens from the given store.
func NewAdminClient(cfg Config, store session.Store) *AdminClient {
	return &AdminClient{
		adminURL:   cfg.AdminURL,
		store:      store,
		httpClient: cfg.httpClient(),
	}
}

// GetStats fetches the aggregate counters.
func (c *AdminClient) GetStats(ctx context.Context) (*response.Stats, error) {
	var res response.Stats
	req := request.Admin{Action: request.ActionGetStats}
	if err := c.post(ctx, req, &res, fallbackStats); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetUsers fetches the full user list.
func (c *AdminClient) GetUsers(ctx context.Context) ([]model.User, error) {
	var res response.Users
	req := request.Admin{Action: request.ActionGetUsers}
	if err := c.post(ctx, req, &res, fallbackUsers); err != nil {
		return nil, err
	}
	return res.Users, nil
}

// UpdateEnergy applies a positive or negative delta to a user's balance with
// the default transaction type. The resulting balance is computed remotely.
func (c *AdminClient) UpdateEnergy(ctx context.Context, userID int64, amount int) (*response.EnergyUpdate, error) {
	return c.UpdateEnergyWithType(ctx, userID, amount, DefaultTransactionType)
}

// UpdateEnergyWithType is UpdateEnergy with an explicit transaction type.
func (c *AdminClient) UpdateEnergyWithType(ctx context.Context, userID int64, amount int, txType string) (*response.EnergyUpdate, error) {
	var res response.EnergyUpdate
	req := request.Admin{
		Action: request.ActionUpdateEnergy,
		UserID: userID,
		Amount: &amount,
		Type:   txType,
	}
	if err := c.post(ctx, req, &res, fallbackUpdateEnergy); err != nil {
		return nil, err
	}
	return &res, nil
}

// ToggleInfiniteEnergy flips the user's infinite-energy flag remotely.
func (c *AdminClient) ToggleInfiniteEnergy(ctx context.Context, userID int64) (*response.InfiniteEnergyUpdate, error) {
	var res response.InfiniteEnergyUpdate
	req := request.Admin{Action: request.ActionToggleInfiniteEnergy, UserID: userID}
	if err := c.post(ctx, req, &res, fallbackToggleInfinite); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *AdminClient) post(ctx context.Context, req request.Admin, result any, fallback string) error {
	// Header attached unconditionally; empty token means empty header value
	headers := map[string]string{HeaderAuthToken: c.store.Token()}
	return postJSON(ctx, c.httpClient, c.adminURL, headers, req, result, fallback)
}
