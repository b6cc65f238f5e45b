package app

import (
	"log"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/config"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/database"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/service"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
