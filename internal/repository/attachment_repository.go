package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
)

type AttachmentRepositoryImpl struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) *AttachmentRepositoryImpl {
	return &AttachmentRepositoryImpl{db: db}
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *models.Attachment) error {
	if attachment.AttachmentID == "" {
		attachment.AttachmentID = uuid.New().String()
	}

	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO idea_attachments (attachment_id, idea_id, attachment_url, created_at)
		VALUES (:attachment_id, :idea_id, :attachment_url, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, attachment)
	if err != nil {
		return fmt.Errorf("ошибка при создании вложения: %w", err)
	}

	return nil
}

func (r *AttachmentRepositoryImpl) GetByID(ctx context.Context, attachmentID string) (*models.Attachment, error) {
	var attachment models.Attachment

	query := `SELECT * FROM idea_attachments WHERE attachment_id = $1`

	err := r.db.GetContext(ctx, &attachment, query, attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении вложения: %w", err)
	}

	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) GetByIdeaID(ctx context.Context, ideaID string) ([]models.Attachment, error) {
	var attachments []models.Attachment

	query := `SELECT * FROM idea_attachments WHERE idea_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &attachments, query, ideaID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении вложений: %w", err)
	}

	return attachments, nil
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, attachmentID string) error {
	query := `DELETE FROM idea_attachments WHERE attachment_id = $1`

	result, err := r.db.ExecContext(ctx, query, attachmentID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении вложения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
