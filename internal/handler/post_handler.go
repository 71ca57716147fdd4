package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/middleware"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
)

const (
	titleMax      = 50
	descMaxCreate = 4000
)

func parsePagination(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// CreatePost submits a post for approval. Any authenticated user may
// create; admins have no user record to own a post.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := middleware.UserFrom(r.Context())
	if user == nil {
		WriteError(w, "User account required", http.StatusForbidden)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" {
		WriteError(w, "Title is required", http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(title) > titleMax {
		WriteError(w, "Title cannot exceed 50 characters", http.StatusBadRequest)
		return
	}
	if description == "" {
		WriteError(w, "Description is required", http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(description) > descMaxCreate {
		WriteError(w, "Description cannot exceed 4000 characters", http.StatusBadRequest)
		return
	}

	if _, err := h.PostService.CreatePost(r.Context(), user.UserID, title, description); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"msg":     "Post submitted for approval",
	}, http.StatusCreated)
}

// GetPosts lists every post, approved or not, for moderation.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, limit := parsePagination(r)

	posts, pagination, err := h.PostService.ListAll(r.Context(), page, limit)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":    true,
		"posts":      posts,
		"pagination": pagination,
	}, http.StatusOK)
}

// GetPublicPosts lists approved posts for anyone. The bearer token, if
// present, is parsed best-effort: a bad token degrades to an anonymous,
// non-premium read instead of failing the request.
func (h *Handlers) GetPublicPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, limit := parsePagination(r)
	sortBy := r.URL.Query().Get("sortBy")

	var viewer *models.User
	if header := r.Header.Get("Authorization"); header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		if userID, err := h.AuthService.VerifyUserToken(token); err == nil {
			if user, err := h.UserRepo.GetByID(r.Context(), userID); err == nil {
				viewer = user
			}
		}
	}

	posts, pagination, err := h.PostService.ListPublic(r.Context(), page, limit, sortBy, viewer)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":    true,
		"posts":      posts,
		"pagination": pagination,
	}, http.StatusOK)
}

// ApprovePost records approval with a reference discriminating whether an
// admin or a creator user approved.
func (h *Handlers) ApprovePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID := mux.Vars(r)["id"]

	var approverID, approverModel string
	if admin := middleware.AdminFrom(r.Context()); admin != nil {
		approverID, approverModel = admin.AdminID, models.ApproverAdmin
	} else if user := middleware.UserFrom(r.Context()); user != nil {
		approverID, approverModel = user.UserID, models.ApproverUser
	} else {
		WriteError(w, "Please authenticate", http.StatusUnauthorized)
		return
	}

	if err := h.PostService.Approve(r.Context(), postID, approverID, approverModel); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"msg":     "Post approved",
	}, http.StatusOK)
}

func (h *Handlers) RejectPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := h.PostService.Reject(r.Context(), postID); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"msg":     "Post rejected and deleted",
	}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := h.PostService.Delete(r.Context(), postID); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"msg":     "Post deleted",
	}, http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := middleware.UserFrom(r.Context())
	if user == nil {
		WriteError(w, "User account required", http.StatusForbidden)
		return
	}

	postID := mux.Vars(r)["id"]

	likeCount, liked, err := h.PostService.ToggleLike(r.Context(), postID, user.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":   true,
		"likeCount": likeCount,
		"hasLiked":  liked,
	}, http.StatusOK)
}
