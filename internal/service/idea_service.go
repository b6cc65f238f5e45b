package service

import (
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"strings"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/config"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/storage"
)

type CreateIdeaRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type IdeaPage struct {
	Ideas      []models.Idea
	Page       int
	TotalPages int
	Total      int
}

type IdeaService interface {
	CreateIdea(ctx context.Context, req CreateIdeaRequest) (*models.Idea, error)
	ListIdeas(ctx context.Context, page, limit int) (*IdeaPage, error)
	DeleteIdea(ctx context.Context, ideaID, requesterEmail string, isAdmin bool) error
	AddAttachment(ctx context.Context, ideaID, requesterEmail, fileName string, file io.Reader, size int64) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, ideaID, attachmentID, requesterEmail string, isAdmin bool) error
}

type ideaService struct {
	ideaRepo       repository.IdeaRepository
	attachmentRepo repository.AttachmentRepository
	storage        storage.Storage
	cfg            *config.Config
}

func NewIdeaService(ideaRepo repository.IdeaRepository, attachmentRepo repository.AttachmentRepository, storage storage.Storage, cfg *config.Config) IdeaService {
	return &ideaService{
		ideaRepo:       ideaRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		cfg:            cfg,
	}
}

// SanitizeDescription убирает пробелы по краям и экранирует HTML
func SanitizeDescription(description string) string {
	return html.EscapeString(strings.TrimSpace(description))
}

func (s *ideaService) CreateIdea(ctx context.Context, req CreateIdeaRequest) (*models.Idea, error) {
	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	idea := &models.Idea{
		Username:    req.Username,
		Email:       req.Email,
		Description: SanitizeDescription(req.Description),
		Status:      models.StatusPending,
		Tags:        tags,
		Comments:    []models.Comment{},
	}

	err := s.ideaRepo.Create(ctx, idea)
	if err != nil {
		return nil, err
	}

	return idea, nil
}

func (s *ideaService) ListIdeas(ctx context.Context, page, limit int) (*IdeaPage, error) {
	offset := (page - 1) * limit

	ideas, total, err := s.ideaRepo.GetPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if ideas == nil {
		ideas = []models.Idea{}
	}

	return &IdeaPage{
		Ideas:      ideas,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		Total:      total,
	}, nil
}

// DeleteIdea удаляет идею. Право на удаление: владелец (по email) или админ.
func (s *ideaService) DeleteIdea(ctx context.Context, ideaID, requesterEmail string, isAdmin bool) error {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}

	if !isAdmin && !strings.EqualFold(idea.Email, requesterEmail) {
		return ErrForbidden
	}

	attachments, err := s.attachmentRepo.GetByIdeaID(ctx, ideaID)
	if err == nil {
		for _, attachment := range attachments {
			objectName := objectNameFromURL(attachment.AttachmentURL)
			if objectName == "" {
				continue
			}
			if err := s.storage.DeleteAttachment(ctx, objectName); err != nil {
				log.Printf("Предупреждение: не удалось удалить вложение из MinIO: %v", err)
			}
		}
	}

	return s.ideaRepo.Delete(ctx, ideaID)
}

func (s *ideaService) AddAttachment(ctx context.Context, ideaID, requesterEmail, fileName string, file io.Reader, size int64) (*models.Attachment, error) {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(idea.Email, requesterEmail) {
		return nil, ErrForbidden
	}

	objectName, attachmentURL, err := s.storage.UploadAttachment(ctx, ideaID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки вложения в MinIO: %w", err)
	}

	attachment := &models.Attachment{
		IdeaID:        ideaID,
		AttachmentURL: attachmentURL,
	}

	err = s.attachmentRepo.Create(ctx, attachment)
	if err != nil {
		// откатываем загрузку, чтобы не оставлять сироту в хранилище
		if delErr := s.storage.DeleteAttachment(ctx, objectName); delErr != nil {
			log.Printf("Предупреждение: не удалось откатить загрузку в MinIO: %v", delErr)
		}
		return nil, fmt.Errorf("ошибка сохранения вложения в БД: %w", err)
	}

	return attachment, nil
}

func (s *ideaService) DeleteAttachment(ctx context.Context, ideaID, attachmentID, requesterEmail string, isAdmin bool) error {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}

	if !isAdmin && !strings.EqualFold(idea.Email, requesterEmail) {
		return ErrForbidden
	}

	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}

	if attachment.IdeaID != ideaID {
		return repository.ErrNotFound
	}

	objectName := objectNameFromURL(attachment.AttachmentURL)
	if objectName != "" {
		if err := s.storage.DeleteAttachment(ctx, objectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить из MinIO: %v", err)
		}
	}

	return s.attachmentRepo.Delete(ctx, attachmentID)
}

// objectNameFromURL выделяет путь объекта из URL вида
// http://host/bucket/ideas/<id>/...: все после имени bucket
func objectNameFromURL(attachmentURL string) string {
	parts := strings.SplitN(attachmentURL, "//", 2)
	if len(parts) == 2 {
		attachmentURL = parts[1]
	}

	segments := strings.Split(attachmentURL, "/")
	if len(segments) < 3 {
		return ""
	}

	return strings.Join(segments[2:], "/")
}
