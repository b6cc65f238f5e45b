package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID       string    `json:"id" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	RefreshToken string    `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type Idea struct {
	IdeaID      string         `json:"id" db:"idea_id"`
	Username    string         `json:"username" db:"username"`
	Email       string         `json:"email" db:"email"`
	Description string         `json:"description" db:"description"`
	Status      string         `json:"status" db:"status"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	Likes       int            `json:"likes" db:"likes"`
	Comments    []Comment      `json:"comments" db:"-"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	IdeaID    string    `json:"ideaId" db:"idea_id"`
	Text      string    `json:"text" db:"text"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Attachment struct {
	AttachmentID  string    `json:"attachmentId" db:"attachment_id"`
	IdeaID        string    `json:"ideaId" db:"idea_id"`
	AttachmentURL string    `json:"attachmentUrl" db:"attachment_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// статусы идеи
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)
