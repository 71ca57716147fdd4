package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/storage"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	NormalizePremium(ctx context.Context, user *models.User, now time.Time) (*models.User, error)
	ActivatePremium(ctx context.Context, userID string) (*models.User, error)
	UpdateName(ctx context.Context, userID, name string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateProfilePicture(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) UserService {
	return &userService{userRepo: userRepo, storage: storage, cfg: cfg}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.NormalizePremium(ctx, user, time.Now())
}

// NormalizePremium applies lazy premium eviction: if the subscription has
// an expiry in the past, the stored state is reverted before the user is
// consumed by anything else. Idempotent; safe to call at every read
// boundary.
func (s *userService) NormalizePremium(ctx context.Context, user *models.User, now time.Time) (*models.User, error) {
	if !user.Premium || user.PremiumExpiresAt == nil || !now.After(*user.PremiumExpiresAt) {
		return user, nil
	}

	if _, err := s.userRepo.ClearExpiredPremium(ctx, user.UserID, now); err != nil {
		return nil, err
	}

	user.Premium = false
	user.PremiumExpiresAt = nil
	return user, nil
}

func (s *userService) ActivatePremium(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Activation always restarts the window; no stacking onto a
	// remaining subscription.
	expiresAt := time.Now().Add(s.cfg.PremiumDuration)
	user.Premium = true
	user.PremiumExpiresAt = &expiresAt

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateName(ctx context.Context, userID, name string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.PasswordHash == "" {
		return fmt.Errorf("password updates are not available for google-authenticated accounts: %w", models.ErrValidation)
	}

	if _, err := s.userRepo.VerifyPassword(ctx, user.Email, currentPassword); err != nil {
		return fmt.Errorf("current password is incorrect: %w", models.ErrValidation)
	}

	return s.userRepo.UpdatePassword(ctx, userID, newPassword)
}

func (s *userService) UpdateProfilePicture(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, pictureURL, err := s.storage.UploadAvatar(ctx, userID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	user.ProfilePicture = pictureURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
