package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.CreatedAt = time.Now()

	query := `
		INSERT INTO posts (post_id, title, description, user_id, approved, like_count, created_at)
		VALUES (:post_id, :title, :description, :user_id, :approved, :like_count, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `
		SELECT p.*, u.name AS author_name, u.profile_picture AS author_picture
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.post_id = $1
	`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) ListAll(ctx context.Context, page, limit int) ([]models.Post, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT p.*, u.name AS author_name, u.profile_picture AS author_picture
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return posts, total, nil
}

func (r *postRepository) ListApproved(ctx context.Context, page, limit int, sortBy string) ([]models.Post, int, error) {
	offset := (page - 1) * limit

	// Whitelisted ORDER BY; sortBy never reaches the query directly.
	var order string
	switch sortBy {
	case "oldest":
		order = "p.created_at ASC"
	case "mostLiked":
		order = "p.like_count DESC, p.created_at DESC"
	default: // newest
		order = "p.created_at DESC"
	}

	query := fmt.Sprintf(`
		SELECT p.*, u.name AS author_name, u.profile_picture AS author_picture
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.approved = TRUE
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`, order)

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list approved posts: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts WHERE approved = TRUE`); err != nil {
		return nil, 0, fmt.Errorf("failed to count approved posts: %w", err)
	}

	return posts, total, nil
}

func (r *postRepository) Approve(ctx context.Context, postID, approverID, approverModel string) error {
	query := `
		UPDATE posts SET
			approved = TRUE,
			approved_by = $2,
			approved_by_model = $3
		WHERE post_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, postID, approverID, approverModel)
	if err != nil {
		return fmt.Errorf("failed to approve post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	return nil
}

// ToggleLike flips the caller's membership in the like set and recomputes
// like_count from the set inside one transaction, so the counter can never
// drift from the set under concurrent toggles.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID string) (int, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to toggle like: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	liked := removed == 0
	if liked {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
		if err != nil {
			return 0, false, fmt.Errorf("failed to insert like: %w", err)
		}
	}

	var likeCount int
	err = tx.GetContext(ctx, &likeCount, `
		UPDATE posts
		SET like_count = (SELECT COUNT(*) FROM post_likes WHERE post_id = $1)
		WHERE post_id = $1
		RETURNING like_count
	`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return 0, false, fmt.Errorf("failed to update like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit like toggle: %w", err)
	}

	return likeCount, liked, nil
}

func (r *postRepository) LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []string
	err := r.db.SelectContext(ctx, &ids, `
		SELECT post_id FROM post_likes
		WHERE user_id = $1 AND post_id = ANY($2)
	`, userID, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load liked posts: %w", err)
	}

	for _, id := range ids {
		liked[id] = true
	}

	return liked, nil
}
