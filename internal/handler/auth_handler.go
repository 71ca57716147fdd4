package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/service"
)

type SignupRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"name" validate:"required,min=2,max=15"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,url"`
}

type AuthResponse struct {
	Success      bool         `json:"success"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *models.User `json:"user"`
}

// passwordPolicyOK requires at least one uppercase letter, one lowercase
// letter, one digit and one special character.
func passwordPolicyOK(password string) bool {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@$!%*#?&", r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid signup data", http.StatusBadRequest)
		return
	}

	if !passwordPolicyOK(req.Password) {
		WriteError(w, "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Signup(r.Context(), service.SignupRequest{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			WriteError(w, "Email already registered", http.StatusBadRequest)
			return
		}
		h.WriteDomainError(w, err)
		return
	}

	token, err := h.AuthService.IssueAccessToken(user.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	refreshToken, err := h.AuthService.IssueRefreshToken(user.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{
		Success:      true,
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid login data", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.AuthService.IssueAccessToken(user.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	refreshToken, err := h.AuthService.IssueRefreshToken(user.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{
		Success:      true,
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.RefreshToken == "" {
		WriteError(w, "Refresh token required", http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, "Invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"token":   token,
	}, http.StatusOK)
}

// GoogleAuth redirects the browser to Google's consent screen.
func (h *Handlers) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	http.Redirect(w, r, h.AuthService.GoogleAuthURL(state), http.StatusTemporaryRedirect)
}

// GoogleAuthCallback finishes the OAuth flow. Blocked users are sent back
// to the frontend with an error instead of tokens.
func (h *Handlers) GoogleAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, h.Cfg.FrontendURL+"/login", http.StatusTemporaryRedirect)
		return
	}

	user, err := h.AuthService.GoogleCallback(r.Context(), code)
	if err != nil {
		http.Redirect(w, r, h.Cfg.FrontendURL+"/login", http.StatusTemporaryRedirect)
		return
	}

	if user.Blocked {
		http.Redirect(w, r, h.Cfg.FrontendURL+"?error=user_blocked", http.StatusTemporaryRedirect)
		return
	}

	token, err := h.AuthService.IssueAccessToken(user.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	refreshToken, err := h.AuthService.IssueRefreshToken(user.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	redirect := fmt.Sprintf("%s?token=%s&refreshToken=%s", h.Cfg.FrontendURL, token, refreshToken)
	http.Redirect(w, r, redirect, http.StatusTemporaryRedirect)
}
