package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/config"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/service"
)

type Handlers struct {
	AuthService  service.AuthService
	IdeaService  service.IdeaService
	AdminService service.AdminService
	UserRepo     repository.UserRepository
	IdeaRepo     repository.IdeaRepository
	Cfg          *config.Config
	Validate     *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:  service.Auth,
		IdeaService:  service.Idea,
		AdminService: service.Admin,
		UserRepo:     repo.User,
		IdeaRepo:     repo.Idea,
		Cfg:          config,
		Validate:     validator.New(),
	}
}
