package models

import (
	"time"
)

// Approver collections for Post.ApprovedByModel.
const (
	ApproverAdmin = "Admin"
	ApproverUser  = "User"
)

// Admin roles.
const (
	RoleSuper   = "super"
	RoleManager = "manager"
)

type User struct {
	UserID           string     `json:"id" db:"user_id"`
	Email            string     `json:"email" db:"email"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	Name             string     `json:"name" db:"name"`
	ProfilePicture   string     `json:"profilePicture" db:"profile_picture"`
	GoogleID         *string    `json:"googleId,omitempty" db:"google_id"`
	Creator          bool       `json:"creator" db:"creator"`
	Premium          bool       `json:"premium" db:"premium"`
	PremiumExpiresAt *time.Time `json:"premiumExpiresAt" db:"premium_expires_at"`
	Blocked          bool       `json:"blocked" db:"blocked"`
	LastLogin        *time.Time `json:"lastLogin,omitempty" db:"last_login"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// PremiumActive reports whether the user's premium subscription is valid
// at the given instant. A nil expiry means premium without an end date.
func (u *User) PremiumActive(now time.Time) bool {
	if !u.Premium {
		return false
	}
	return u.PremiumExpiresAt == nil || !now.After(*u.PremiumExpiresAt)
}

type Admin struct {
	AdminID      string    `json:"id" db:"admin_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID          string     `json:"id" db:"post_id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	UserID          string     `json:"userId" db:"user_id"`
	Approved        bool       `json:"approved" db:"approved"`
	ApprovedBy      *string    `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedByModel *string    `json:"approvedByModel,omitempty" db:"approved_by_model"`
	LikeCount       int        `json:"likeCount" db:"like_count"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	AuthorName      string     `json:"authorName,omitempty" db:"author_name"`
	AuthorPicture   string     `json:"authorPicture,omitempty" db:"author_picture"`
	IsTruncated     bool       `json:"isTruncated" db:"-"`
	HasLiked        bool       `json:"hasLiked" db:"-"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return Pagination{CurrentPage: page, TotalPages: totalPages, Total: total}
}
