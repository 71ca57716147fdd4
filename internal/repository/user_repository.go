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

// userColumns excludes password_hash so listing and search never carry
// hashes out of the repository.
const userColumns = `user_id, email, '' AS password_hash, name, profile_picture, google_id,
	creator, premium, premium_expires_at, blocked, last_login, created_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User, password string) error {
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	// Email lookups are case-insensitive; normalize before storage.
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (user_id, email, password_hash, name, profile_picture, google_id,
			creator, premium, premium_expires_at, blocked, created_at)
		VALUES (:user_id, :email, :password_hash, :name, :profile_picture, :google_id,
			:creator, :premium, :premium_expires_at, :blocked, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("user with email %s: %w", user.Email, models.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, fmt.Errorf("password login unavailable: %w", models.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			name = :name,
			profile_picture = :profile_picture,
			google_id = :google_id,
			creator = :creator,
			premium = :premium,
			premium_expires_at = :premium_expires_at,
			blocked = :blocked
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, models.ErrNotFound)
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `UPDATE users SET password_hash = $1 WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, string(hashedPassword), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}

	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE users SET last_login = $1 WHERE user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, at, userID); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

// ClearExpiredPremium lazily reverts an elapsed subscription. The WHERE
// clause makes the write conditional, so concurrent callers cannot
// double-apply it. Returns true when a row was actually reverted.
func (r *userRepository) ClearExpiredPremium(ctx context.Context, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE users SET premium = FALSE, premium_expires_at = NULL
		WHERE user_id = $1
		  AND premium = TRUE
		  AND premium_expires_at IS NOT NULL
		  AND premium_expires_at < $2
	`

	result, err := r.db.ExecContext(ctx, query, userID, now)
	if err != nil {
		return false, fmt.Errorf("failed to clear expired premium: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check updated rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]models.User, int, error) {
	offset := (page - 1) * limit

	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, userColumns)

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	stmt := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userColumns)

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, stmt, "%"+query+"%", limit); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}
