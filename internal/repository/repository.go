package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User, password string) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, password string) error
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	ClearExpiredPremium(ctx context.Context, userID string, now time.Time) (bool, error)
	List(ctx context.Context, page, limit int) ([]models.User, int, error)
	Search(ctx context.Context, query string, limit int) ([]models.User, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin, password string) error
	GetByID(ctx context.Context, adminID string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.Admin, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListAll(ctx context.Context, page, limit int) ([]models.Post, int, error)
	ListApproved(ctx context.Context, page, limit int, sortBy string) ([]models.Post, int, error)
	Approve(ctx context.Context, postID, approverID, approverModel string) error
	Delete(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID, userID string) (int, bool, error)
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

type Repository struct {
	User  UserRepository
	Admin AdminRepository
	Post  PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:  NewUserRepository(db),
		Admin: NewAdminRepository(db),
		Post:  NewPostRepository(db),
	}
}
