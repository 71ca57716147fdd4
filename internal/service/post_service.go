package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, userID, title, description string) (*models.Post, error)
	ListAll(ctx context.Context, page, limit int) ([]models.Post, models.Pagination, error)
	ListPublic(ctx context.Context, page, limit int, sortBy string, viewer *models.User) ([]models.Post, models.Pagination, error)
	Approve(ctx context.Context, postID, approverID, approverModel string) error
	Reject(ctx context.Context, postID string) error
	Delete(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID, userID string) (int, bool, error)
}

type postService struct {
	postRepo repository.PostRepository
	userSvc  UserService
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, userSvc UserService, cfg *config.Config) PostService {
	return &postService{postRepo: postRepo, userSvc: userSvc, cfg: cfg}
}

func (p *postService) CreatePost(ctx context.Context, userID, title, description string) (*models.Post, error) {
	post := &models.Post{
		Title:       title,
		Description: description,
		UserID:      userID,
		Approved:    false,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) ListAll(ctx context.Context, page, limit int) ([]models.Post, models.Pagination, error) {
	posts, total, err := p.postRepo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return posts, models.NewPagination(page, limit, total), nil
}

// ListPublic lists approved posts for anyone. Readers without an active
// premium subscription get descriptions cut to the configured limit;
// a signed-in viewer additionally gets hasLiked per post.
func (p *postService) ListPublic(ctx context.Context, page, limit int, sortBy string, viewer *models.User) ([]models.Post, models.Pagination, error) {
	posts, total, err := p.postRepo.ListApproved(ctx, page, limit, sortBy)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	isPremium := false
	if viewer != nil {
		viewer, err = p.userSvc.NormalizePremium(ctx, viewer, time.Now())
		if err != nil {
			return nil, models.Pagination{}, err
		}
		isPremium = viewer.PremiumActive(time.Now())
	}

	var liked map[string]bool
	if viewer != nil {
		ids := make([]string, len(posts))
		for i := range posts {
			ids[i] = posts[i].PostID
		}
		liked, err = p.postRepo.LikedPostIDs(ctx, viewer.UserID, ids)
		if err != nil {
			return nil, models.Pagination{}, err
		}
	}

	for i := range posts {
		if !isPremium {
			posts[i].Description, posts[i].IsTruncated = truncateDescription(posts[i].Description, p.cfg.PremiumCharLimit)
		}
		if liked != nil {
			posts[i].HasLiked = liked[posts[i].PostID]
		}
	}

	return posts, models.NewPagination(page, limit, total), nil
}

func truncateDescription(description string, limit int) (string, bool) {
	runes := []rune(description)
	if len(runes) <= limit {
		return description, false
	}
	return string(runes[:limit]) + "...", true
}

func (p *postService) Approve(ctx context.Context, postID, approverID, approverModel string) error {
	if approverModel != models.ApproverAdmin && approverModel != models.ApproverUser {
		return fmt.Errorf("unknown approver model %q: %w", approverModel, models.ErrValidation)
	}

	return p.postRepo.Approve(ctx, postID, approverID, approverModel)
}

// Reject deletes a post whether or not it was already approved.
func (p *postService) Reject(ctx context.Context, postID string) error {
	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) Delete(ctx context.Context, postID string) error {
	return p.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's like on an approved post. Liking twice
// returns the post to its original state.
func (p *postService) ToggleLike(ctx context.Context, postID, userID string) (int, bool, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return 0, false, err
	}

	if !post.Approved {
		return 0, false, fmt.Errorf("post not approved: %w", models.ErrNotFound)
	}

	return p.postRepo.ToggleLike(ctx, postID, userID)
}
