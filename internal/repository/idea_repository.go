package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
)

type IdeaRepositoryImpl struct {
	db *sqlx.DB
}

func NewIdeaRepository(db *sqlx.DB) *IdeaRepositoryImpl {
	return &IdeaRepositoryImpl{db: db}
}

func (r *IdeaRepositoryImpl) Create(ctx context.Context, idea *models.Idea) error {
	if idea.IdeaID == "" {
		idea.IdeaID = uuid.New().String()
	}

	if idea.Status == "" {
		idea.Status = models.StatusPending
	}

	if idea.Tags == nil {
		idea.Tags = pq.StringArray{}
	}

	now := time.Now()
	idea.CreatedAt = now
	idea.UpdatedAt = now

	query := `
		INSERT INTO ideas (idea_id, username, email, description, status, tags, likes, created_at, updated_at)
		VALUES (:idea_id, :username, :email, :description, :status, :tags, :likes, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, idea)
	if err != nil {
		return fmt.Errorf("ошибка при создании идеи: %w", err)
	}

	return nil
}

func (r *IdeaRepositoryImpl) GetByID(ctx context.Context, ideaID string) (*models.Idea, error) {
	var idea models.Idea

	query := `SELECT * FROM ideas WHERE idea_id = $1`

	err := r.db.GetContext(ctx, &idea, query, ideaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении идеи: %w", err)
	}

	if err := r.loadComments(ctx, &idea); err != nil {
		return nil, err
	}

	return &idea, nil
}

// GetPage возвращает страницу идей (новые первыми) и общее количество
func (r *IdeaRepositoryImpl) GetPage(ctx context.Context, limit, offset int) ([]models.Idea, int, error) {
	var total int

	countQuery := `SELECT COUNT(*) FROM ideas`

	err := r.db.GetContext(ctx, &total, countQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете идей: %w", err)
	}

	var ideas []models.Idea

	query := `
		SELECT * FROM ideas
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	err = r.db.SelectContext(ctx, &ideas, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении списка идей: %w", err)
	}

	if err := r.loadCommentsForAll(ctx, ideas); err != nil {
		return nil, 0, err
	}

	return ideas, total, nil
}

func (r *IdeaRepositoryImpl) GetAll(ctx context.Context) ([]models.Idea, error) {
	var ideas []models.Idea

	query := `SELECT * FROM ideas ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &ideas, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка идей: %w", err)
	}

	if err := r.loadCommentsForAll(ctx, ideas); err != nil {
		return nil, err
	}

	return ideas, nil
}

func (r *IdeaRepositoryImpl) Delete(ctx context.Context, ideaID string) error {
	// комментарии и вложения удаляются каскадно
	query := `DELETE FROM ideas WHERE idea_id = $1`

	result, err := r.db.ExecContext(ctx, query, ideaID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении идеи: %w", err)
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

func (r *IdeaRepositoryImpl) loadComments(ctx context.Context, idea *models.Idea) error {
	var comments []models.Comment

	query := `SELECT * FROM idea_comments WHERE idea_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &comments, query, idea.IdeaID)
	if err != nil {
		return fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	idea.Comments = comments
	return nil
}

// loadCommentsForAll подтягивает комментарии для целой страницы идей одним запросом
func (r *IdeaRepositoryImpl) loadCommentsForAll(ctx context.Context, ideas []models.Idea) error {
	if len(ideas) == 0 {
		return nil
	}

	ids := make([]string, len(ideas))
	for i := range ideas {
		ids[i] = ideas[i].IdeaID
	}

	query, args, err := sqlx.In(`SELECT * FROM idea_comments WHERE idea_id IN (?) ORDER BY created_at`, ids)
	if err != nil {
		return fmt.Errorf("ошибка при построении запроса комментариев: %w", err)
	}

	var comments []models.Comment

	err = r.db.SelectContext(ctx, &comments, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	byIdea := make(map[string][]models.Comment, len(ideas))
	for _, comment := range comments {
		byIdea[comment.IdeaID] = append(byIdea[comment.IdeaID], comment)
	}

	for i := range ideas {
		comments := byIdea[ideas[i].IdeaID]
		if comments == nil {
			comments = []models.Comment{}
		}
		ideas[i].Comments = comments
	}

	return nil
}
