package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/middleware"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
)

func TestCreatePostSuccess(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	posts.On("CreatePost", mock.Anything, "user-1", "My Notes", "Everything about the course").
		Return(&models.Post{PostID: "post-1"}, nil)

	payload, _ := json.Marshal(map[string]string{
		"title":       "  My Notes  ",
		"description": "Everything about the course",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(payload))
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{UserID: "user-1"}))
	rec := httptest.NewRecorder()
	h.CreatePost(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Post submitted for approval", body["msg"])
	posts.AssertExpectations(t)
}

func TestCreatePostRequiresUserPrincipal(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	payload, _ := json.Marshal(map[string]string{"title": "T", "description": "D"})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(payload))
	// Admin principal only: admins have no user record to own a post.
	req = req.WithContext(middleware.WithAdmin(req.Context(), &models.Admin{AdminID: "admin-1"}))
	rec := httptest.NewRecorder()
	h.CreatePost(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePostValidatesLengths(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	longTitle := make([]byte, 0, 51)
	for i := 0; i < 51; i++ {
		longTitle = append(longTitle, 'a')
	}

	payload, _ := json.Marshal(map[string]string{
		"title":       string(longTitle),
		"description": "fine",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(payload))
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{UserID: "user-1"}))
	rec := httptest.NewRecorder()
	h.CreatePost(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPublicPostsAnonymous(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	posts.On("ListPublic", mock.Anything, 1, 10, "", (*models.User)(nil)).
		Return([]models.Post{{PostID: "post-1", IsTruncated: true}}, models.Pagination{CurrentPage: 1, TotalPages: 1, Total: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/public", nil)
	rec := httptest.NewRecorder()
	h.GetPublicPosts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	posts.AssertExpectations(t)
}

func TestGetPublicPostsIgnoresBadToken(t *testing.T) {
	h, auth, _, posts, _, _ := newTestHandlers()

	auth.On("VerifyUserToken", "garbage").Return("", models.ErrTokenInvalid)
	posts.On("ListPublic", mock.Anything, 1, 10, "", (*models.User)(nil)).
		Return([]models.Post{}, models.Pagination{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.GetPublicPosts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPublicPostsResolvesViewer(t *testing.T) {
	h, auth, _, posts, _, _ := newTestHandlers()
	viewer := &models.User{UserID: "user-1", Premium: true}

	auth.On("VerifyUserToken", "good-token").Return("user-1", nil)
	h.UserRepo.(*MockUserRepository).On("GetByID", mock.Anything, "user-1").Return(viewer, nil)
	posts.On("ListPublic", mock.Anything, 2, 5, "mostLiked", viewer).
		Return([]models.Post{}, models.Pagination{CurrentPage: 2}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/public?page=2&limit=5&sortBy=mostLiked", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.GetPublicPosts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	posts.AssertExpectations(t)
}

func TestApprovePostAsAdmin(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	posts.On("Approve", mock.Anything, "post-1", "admin-1", models.ApproverAdmin).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/posts/post-1/approve", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = req.WithContext(middleware.WithAdmin(req.Context(), &models.Admin{AdminID: "admin-1"}))
	rec := httptest.NewRecorder()
	h.ApprovePost(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	posts.AssertExpectations(t)
}

func TestApprovePostAsCreatorUser(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	posts.On("Approve", mock.Anything, "post-1", "user-9", models.ApproverUser).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/posts/post-1/approve", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{UserID: "user-9", Creator: true}))
	rec := httptest.NewRecorder()
	h.ApprovePost(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	posts.AssertExpectations(t)
}

func TestRejectPostDeletes(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	posts.On("Reject", mock.Anything, "post-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/post-1/reject", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	rec := httptest.NewRecorder()
	h.RejectPost(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	posts.AssertExpectations(t)
}

func TestToggleLikeReturnsState(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	posts.On("ToggleLike", mock.Anything, "post-1", "user-1").Return(7, true, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/post-1/like", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{UserID: "user-1"}))
	rec := httptest.NewRecorder()
	h.ToggleLike(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(7), body["likeCount"])
	assert.Equal(t, true, body["hasLiked"])
}

func TestToggleLikeRequiresUser(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/posts/post-1/like", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = req.WithContext(middleware.WithAdmin(req.Context(), &models.Admin{AdminID: "admin-1"}))
	rec := httptest.NewRecorder()
	h.ToggleLike(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	posts.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLikeUnapprovedPostIs404(t *testing.T) {
	h, _, _, posts, _, _ := newTestHandlers()

	posts.On("ToggleLike", mock.Anything, "post-1", "user-1").
		Return(0, false, models.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/post-1/like", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{UserID: "user-1"}))
	rec := httptest.NewRecorder()
	h.ToggleLike(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
