package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/middleware"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	principal := middleware.UserFrom(r.Context())
	if principal == nil {
		WriteError(w, "Please authenticate", http.StatusUnauthorized)
		return
	}

	// Re-read so the response reflects premium state after lazy eviction.
	user, err := h.UserService.GetProfile(r.Context(), principal.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    user,
	}, http.StatusOK)
}

func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	principal := middleware.UserFrom(r.Context())
	if principal == nil {
		WriteError(w, "Please authenticate", http.StatusUnauthorized)
		return
	}

	var req struct {
		CurrentPassword    string `json:"currentPassword" validate:"required"`
		NewPassword        string `json:"newPassword" validate:"required,min=8"`
		NewConfirmPassword string `json:"newConfirmPassword" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid password data", http.StatusBadRequest)
		return
	}

	if req.NewPassword != req.NewConfirmPassword {
		WriteError(w, "Passwords must match", http.StatusBadRequest)
		return
	}

	if !passwordPolicyOK(req.NewPassword) {
		WriteError(w, "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character", http.StatusBadRequest)
		return
	}

	if err := h.UserService.UpdatePassword(r.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"msg":     "Password updated successfully",
	}, http.StatusOK)
}

func (h *Handlers) UpdateName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	principal := middleware.UserFrom(r.Context())
	if principal == nil {
		WriteError(w, "Please authenticate", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < 2 {
		WriteError(w, "Name must be at least 2 characters", http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(name) > 15 {
		WriteError(w, "Name cannot exceed 15 characters", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateName(r.Context(), principal.UserID, name)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    user,
	}, http.StatusOK)
}

// ActivatePremium flips the caller to premium for the configured window.
// Called by the frontend after a successful payment.
func (h *Handlers) ActivatePremium(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	principal := middleware.UserFrom(r.Context())
	if principal == nil {
		WriteError(w, "Please authenticate", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.ActivatePremium(r.Context(), principal.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    user,
	}, http.StatusOK)
}

func (h *Handlers) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	principal := middleware.UserFrom(r.Context())
	if principal == nil {
		WriteError(w, "Please authenticate", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "File too large or malformed form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		WriteError(w, "Picture file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	user, err := h.UserService.UpdateProfilePicture(r.Context(), principal.UserID, header.Filename, file, header.Size)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    user,
	}, http.StatusOK)
}
