package service

import (
	"errors"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/config"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/storage"
)

// Ошибки бизнес-логики
var (
	ErrInvalidCredentials  = errors.New("неверный email или пароль")
	ErrInvalidRefreshToken = errors.New("недействительный refresh token")
	ErrForbidden           = errors.New("доступ запрещен")
)

type Service struct {
	Auth  AuthService
	Idea  IdeaService
	Admin AdminService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:  NewAuthService(rep.User, cfg),
		Idea:  NewIdeaService(rep.Idea, rep.Attachment, storage, cfg),
		Admin: NewAdminService(rep.User, rep.Idea, cfg),
	}
}
