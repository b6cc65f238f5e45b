package service

import (
	"context"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/config"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListIdeas(ctx context.Context) ([]models.Idea, error)
	DeleteUser(ctx context.Context, userID string) error
	DeleteIdea(ctx context.Context, ideaID string) error
}

type adminService struct {
	userRepo repository.UserRepository
	ideaRepo repository.IdeaRepository
	cfg      *config.Config
}

func NewAdminService(userRepo repository.UserRepository, ideaRepo repository.IdeaRepository, cfg *config.Config) AdminService {
	return &adminService{
		userRepo: userRepo,
		ideaRepo: ideaRepo,
		cfg:      cfg,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

func (s *adminService) ListIdeas(ctx context.Context) ([]models.Idea, error) {
	ideas, err := s.ideaRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if ideas == nil {
		ideas = []models.Idea{}
	}

	return ideas, nil
}

// DeleteUser удаляет пользователя. Учетные записи администраторов защищены.
func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if s.cfg.IsAdminEmail(user.Email) {
		return ErrForbidden
	}

	return s.userRepo.DeleteUser(ctx, userID)
}

func (s *adminService) DeleteIdea(ctx context.Context, ideaID string) error {
	_, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}

	return s.ideaRepo.Delete(ctx, ideaID)
}
