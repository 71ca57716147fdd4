package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
)

type AdminService interface {
	Login(ctx context.Context, email, password string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, email, password, name, role string) (*models.Admin, error)
	ListUsers(ctx context.Context, page, limit int) ([]models.User, models.Pagination, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	ToggleCreator(ctx context.Context, userID string) (*models.User, error)
	TogglePremium(ctx context.Context, userID string) (*models.User, error)
	ToggleBlock(ctx context.Context, userID string) (*models.User, error)
}

type adminService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
	cfg       *config.Config
}

func NewAdminService(adminRepo repository.AdminRepository, userRepo repository.UserRepository, cfg *config.Config) AdminService {
	return &adminService{adminRepo: adminRepo, userRepo: userRepo, cfg: cfg}
}

func (s *adminService) Login(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := s.adminRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}
	return admin, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, email, password, name, role string) (*models.Admin, error) {
	if role != models.RoleSuper && role != models.RoleManager {
		role = models.RoleManager
	}

	admin := &models.Admin{
		Email: email,
		Name:  name,
		Role:  role,
	}

	if err := s.adminRepo.Create(ctx, admin, password); err != nil {
		return nil, err
	}

	return admin, nil
}

func (s *adminService) ListUsers(ctx context.Context, page, limit int) ([]models.User, models.Pagination, error) {
	users, total, err := s.userRepo.List(ctx, page, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return users, models.NewPagination(page, limit, total), nil
}

func (s *adminService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	return s.userRepo.Search(ctx, query, 20)
}

func (s *adminService) ToggleCreator(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Creator = !user.Creator
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// TogglePremium flips the subscription flag. Turning it on restarts the
// full window; turning it off clears the expiry.
func (s *adminService) TogglePremium(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Premium = !user.Premium
	if user.Premium {
		expiresAt := time.Now().Add(s.cfg.PremiumDuration)
		user.PremiumExpiresAt = &expiresAt
	} else {
		user.PremiumExpiresAt = nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *adminService) ToggleBlock(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Blocked = !user.Blocked
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
