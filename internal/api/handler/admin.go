package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/apierr"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/request"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/response"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/services/admin"
)

// AdminHandler serves the action-discriminated admin endpoint. Authorization
// is enforced upstream by the AdminAuth middleware.
type AdminHandler struct {
	adminService *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Handle dispatches POST /api/admin on the action field
func (h *AdminHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req request.Admin
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewBadRequestError("Invalid request body"))
		return
	}

	switch req.Action {
	case request.ActionGetStats:
		h.stats(w, r)
	case request.ActionGetUsers:
		h.users(w, r)
	case request.ActionUpdateEnergy:
		h.updateEnergy(w, r, req)
	case request.ActionToggleInfiniteEnergy:
		h.toggleInfiniteEnergy(w, r, req)
	default:
		apierr.WriteError(w, apierr.NewBadRequestError("Invalid action"))
	}
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) users(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.Users(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	list := make([]model.User, len(users))
	for i, u := range users {
		list[i] = *u
	}
	response.JSON(w, http.StatusOK, response.Users{Users: list})
}

func (h *AdminHandler) updateEnergy(w http.ResponseWriter, r *http.Request, req request.Admin) {
	if req.UserID == 0 || req.Amount == nil {
		apierr.WriteError(w, apierr.NewBadRequestError("User ID and amount are required"))
		return
	}

	txType := req.Type
	if txType == "" {
		txType = "admin_adjustment"
	}

	newEnergy, err := h.adminService.AdjustEnergy(r.Context(), req.UserID, *req.Amount, txType)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EnergyUpdate{Success: true, NewEnergy: newEnergy})
}

func (h *AdminHandler) toggleInfiniteEnergy(w http.ResponseWriter, r *http.Request, req request.Admin) {
	if req.UserID == 0 {
		apierr.WriteError(w, apierr.NewBadRequestError("User ID is required"))
		return
	}

	enabled, err := h.adminService.ToggleInfiniteEnergy(r.Context(), req.UserID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.InfiniteEnergyUpdate{Success: true, IsInfiniteEnergy: enabled})
}
