package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error
}

type IdeaRepository interface {
	Create(ctx context.Context, idea *models.Idea) error
	GetByID(ctx context.Context, ideaID string) (*models.Idea, error)
	GetPage(ctx context.Context, limit, offset int) ([]models.Idea, int, error)
	GetAll(ctx context.Context) ([]models.Idea, error)
	Delete(ctx context.Context, ideaID string) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, attachmentID string) (*models.Attachment, error)
	GetByIdeaID(ctx context.Context, ideaID string) ([]models.Attachment, error)
	Delete(ctx context.Context, attachmentID string) error
}

type Repository struct {
	User       UserRepository
	Idea       IdeaRepository
	Attachment AttachmentRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Idea:       NewIdeaRepository(db),
		Attachment: NewAttachmentRepository(db),
	}
}
