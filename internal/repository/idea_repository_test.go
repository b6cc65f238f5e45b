package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
)

func ideaColumns() []string {
	return []string{"idea_id", "username", "email", "description", "status", "tags", "likes", "created_at", "updated_at"}
}

func TestIdeaRepository_Create(t *testing.T) {
	sqlxDB, mock := newTestDB(t)
	repo := NewIdeaRepository(sqlxDB)

	ctx := context.Background()

	t.Run("Идея создается со статусом pending", func(t *testing.T) {
		idea := &models.Idea{
			Username:    "alice123",
			Email:       "alice@example.com",
			Description: "Build a faster cache",
		}

		mock.ExpectExec(`
		INSERT INTO ideas (idea_id, username, email, description, status, tags, likes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`).
			WithArgs(
				sqlmock.AnyArg(), // idea_id генерируется в репозитории
				"alice123",
				"alice@example.com",
				"Build a faster cache",
				models.StatusPending,
				sqlmock.AnyArg(), // tags
				0,
				sqlmock.AnyArg(), // created_at
				sqlmock.AnyArg(), // updated_at
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, idea)

		require.NoError(t, err)
		assert.NotEmpty(t, idea.IdeaID)
		assert.Equal(t, models.StatusPending, idea.Status)
		assert.False(t, idea.CreatedAt.IsZero())

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIdeaRepository_GetByID(t *testing.T) {
	sqlxDB, mock := newTestDB(t)
	repo := NewIdeaRepository(sqlxDB)

	ctx := context.Background()

	t.Run("Идея найдена вместе с комментариями", func(t *testing.T) {
		now := time.Now()

		ideaRows := sqlmock.NewRows(ideaColumns()).
			AddRow("idea-1", "alice123", "alice@example.com", "Build a faster cache",
				models.StatusPending, "{}", 0, now, now)

		mock.ExpectQuery(`SELECT * FROM ideas WHERE idea_id = $1`).
			WithArgs("idea-1").
			WillReturnRows(ideaRows)

		commentRows := sqlmock.NewRows([]string{"comment_id", "idea_id", "text", "username", "created_at"}).
			AddRow("comment-1", "idea-1", "Great idea", "bob", now)

		mock.ExpectQuery(`SELECT * FROM idea_comments WHERE idea_id = $1 ORDER BY created_at`).
			WithArgs("idea-1").
			WillReturnRows(commentRows)

		idea, err := repo.GetByID(ctx, "idea-1")

		require.NoError(t, err)
		assert.Equal(t, "alice123", idea.Username)
		require.Len(t, idea.Comments, 1)
		assert.Equal(t, "Great idea", idea.Comments[0].Text)
	})

	t.Run("Идея не найдена", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM ideas WHERE idea_id = $1`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		idea, err := repo.GetByID(ctx, "ghost")

		assert.Nil(t, idea)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestIdeaRepository_GetPage(t *testing.T) {
	sqlxDB, mock := newTestDB(t)
	repo := NewIdeaRepository(sqlxDB)

	ctx := context.Background()

	t.Run("Страница с лимитом и смещением", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT COUNT(*) FROM ideas`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		rows := sqlmock.NewRows(ideaColumns()).
			AddRow("idea-2", "alice123", "alice@example.com", "Second", models.StatusPending, "{}", 0, now, now).
			AddRow("idea-1", "alice123", "alice@example.com", "First", models.StatusPending, "{}", 0, now.Add(-time.Hour), now.Add(-time.Hour))

		mock.ExpectQuery(`
		SELECT * FROM ideas
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`).
			WithArgs(5, 5).
			WillReturnRows(rows)

		commentRows := sqlmock.NewRows([]string{"comment_id", "idea_id", "text", "username", "created_at"}).
			AddRow("comment-1", "idea-2", "Great idea", "bob", now)

		mock.ExpectQuery(`SELECT * FROM idea_comments WHERE idea_id IN (?, ?) ORDER BY created_at`).
			WithArgs("idea-2", "idea-1").
			WillReturnRows(commentRows)

		ideas, total, err := repo.GetPage(ctx, 5, 5)

		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Len(t, ideas, 2)
		assert.Equal(t, "Second", ideas[0].Description)

		// комментарии привязываются к своей идее, у остальных пустой срез
		require.Len(t, ideas[0].Comments, 1)
		assert.Equal(t, "Great idea", ideas[0].Comments[0].Text)
		assert.NotNil(t, ideas[1].Comments)
		assert.Len(t, ideas[1].Comments, 0)
	})
}

func TestIdeaRepository_GetAll(t *testing.T) {
	sqlxDB, mock := newTestDB(t)
	repo := NewIdeaRepository(sqlxDB)

	ctx := context.Background()

	t.Run("Комментарии попадают в выдачу", func(t *testing.T) {
		now := time.Now()

		rows := sqlmock.NewRows(ideaColumns()).
			AddRow("idea-1", "alice123", "alice@example.com", "First", models.StatusPending, "{}", 0, now, now)

		mock.ExpectQuery(`SELECT * FROM ideas ORDER BY created_at DESC`).
			WillReturnRows(rows)

		commentRows := sqlmock.NewRows([]string{"comment_id", "idea_id", "text", "username", "created_at"}).
			AddRow("comment-1", "idea-1", "Nice", "bob", now)

		mock.ExpectQuery(`SELECT * FROM idea_comments WHERE idea_id IN (?) ORDER BY created_at`).
			WithArgs("idea-1").
			WillReturnRows(commentRows)

		ideas, err := repo.GetAll(ctx)

		require.NoError(t, err)
		require.Len(t, ideas, 1)
		require.Len(t, ideas[0].Comments, 1)
		assert.Equal(t, "Nice", ideas[0].Comments[0].Text)
	})
}

func TestIdeaRepository_Delete(t *testing.T) {
	sqlxDB, mock := newTestDB(t)
	repo := NewIdeaRepository(sqlxDB)

	ctx := context.Background()

	t.Run("Идея удалена", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM ideas WHERE idea_id = $1`).
			WithArgs("idea-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "idea-1"))
	})

	t.Run("Идея не найдена", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM ideas WHERE idea_id = $1`).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "ghost"), ErrNotFound)
	})
}
