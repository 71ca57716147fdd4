package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
)

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if admin.AdminID == "" {
		admin.AdminID = uuid.New().String()
	}
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	admin.PasswordHash = string(hashedPassword)
	if admin.Role == "" {
		admin.Role = models.RoleManager
	}
	admin.CreatedAt = time.Now()

	query := `
		INSERT INTO admins (admin_id, email, password_hash, name, role, created_at)
		VALUES (:admin_id, :email, :password_hash, :name, :role, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, admin)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("admin with email %s: %w", admin.Email, models.ErrConflict)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, adminID string) (*models.Admin, error) {
	var admin models.Admin

	query := `SELECT * FROM admins WHERE admin_id = $1`

	err := r.db.GetContext(ctx, &admin, query, adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %s: %w", adminID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin

	query := `SELECT * FROM admins WHERE email = $1`

	err := r.db.GetContext(ctx, &admin, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin with email %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) VerifyPassword(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	return admin, nil
}
