package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/middleware"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
)

func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid login data", http.StatusBadRequest)
		return
	}

	admin, err := h.AdminService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.AuthService.IssueAdminToken(admin.AdminID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"token":   "Bearer " + token,
		"admin":   admin,
	}, http.StatusOK)
}

func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, limit := parsePagination(r)

	users, pagination, err := h.AdminService.ListUsers(r.Context(), page, limit)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":    true,
		"users":      users,
		"pagination": pagination,
	}, http.StatusOK)
}

func (h *Handlers) AdminSearchUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		WriteError(w, "Search query is required", http.StatusBadRequest)
		return
	}

	users, err := h.AdminService.SearchUsers(r.Context(), query)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"users":   users,
	}, http.StatusOK)
}

func (h *Handlers) AdminCreateAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Only attached for logging context; AdminAuth already gated access.
	if middleware.AdminFrom(r.Context()) == nil {
		WriteError(w, "Please authenticate", http.StatusUnauthorized)
		return
	}

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Name     string `json:"name" validate:"required"`
		Role     string `json:"role" validate:"omitempty,oneof=super manager"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid admin data", http.StatusBadRequest)
		return
	}

	if _, err := h.AdminService.CreateAdmin(r.Context(), req.Email, req.Password, req.Name, req.Role); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"msg":     "Admin created successfully",
	}, http.StatusCreated)
}

func (h *Handlers) AdminToggleCreator(w http.ResponseWriter, r *http.Request) {
	h.adminToggle(w, r, h.AdminService.ToggleCreator)
}

func (h *Handlers) AdminTogglePremium(w http.ResponseWriter, r *http.Request) {
	h.adminToggle(w, r, h.AdminService.TogglePremium)
}

func (h *Handlers) AdminToggleBlock(w http.ResponseWriter, r *http.Request) {
	h.adminToggle(w, r, h.AdminService.ToggleBlock)
}

func (h *Handlers) adminToggle(w http.ResponseWriter, r *http.Request, toggle func(ctx context.Context, userID string) (*models.User, error)) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := mux.Vars(r)["id"]

	user, err := toggle(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    user,
	}, http.StatusOK)
}
