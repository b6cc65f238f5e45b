package test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/service"
)

func TestGetAllUsersHandler(t *testing.T) {
	t.Run("Успешное получение списка пользователей", func(t *testing.T) {
		mockAdmin := new(MockAdminService)
		mockAdmin.On("ListUsers", mock.Anything).Return([]models.User{
			{
				UserID:       "user-1",
				Username:     "alice123",
				Email:        "alice@example.com",
				PasswordHash: "$2a$10$secret-hash",
				RefreshToken: "stored-refresh",
			},
		}, nil)

		handler := newTestHandlers(new(MockAuthService), new(MockIdeaService), mockAdmin)
		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		rec := httptest.NewRecorder()

		handler.GetAllUsers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		users := body["users"].([]interface{})
		assert.Len(t, users, 1)
		first := users[0].(map[string]interface{})
		assert.Equal(t, "alice123", first["username"])
		// хэш пароля и refresh-токен не должны попадать в JSON
		assert.NotContains(t, rec.Body.String(), "secret-hash")
		assert.NotContains(t, rec.Body.String(), "stored-refresh")
		mockAdmin.AssertExpectations(t)
	})

	t.Run("Ошибка при получении пользователей", func(t *testing.T) {
		mockAdmin := new(MockAdminService)
		mockAdmin.On("ListUsers", mock.Anything).Return(nil, assert.AnError)

		handler := newTestHandlers(new(MockAuthService), new(MockIdeaService), mockAdmin)
		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		rec := httptest.NewRecorder()

		handler.GetAllUsers(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), "Error fetching users"))
		mockAdmin.AssertExpectations(t)
	})
}

func TestGetAllIdeasHandler(t *testing.T) {
	t.Run("Успешное получение всех идей", func(t *testing.T) {
		mockAdmin := new(MockAdminService)
		mockAdmin.On("ListIdeas", mock.Anything).Return([]models.Idea{
			{IdeaID: "idea-1", Username: "alice123", Description: "first", Status: models.StatusPending},
			{IdeaID: "idea-2", Username: "bob456", Description: "second", Status: models.StatusRejected},
		}, nil)

		handler := newTestHandlers(new(MockAuthService), new(MockIdeaService), mockAdmin)
		req := httptest.NewRequest("GET", "/api/admin/ideas", nil)
		rec := httptest.NewRecorder()

		handler.GetAllIdeas(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		ideas := body["ideas"].([]interface{})
		assert.Len(t, ideas, 2)
		mockAdmin.AssertExpectations(t)
	})
}

func TestAdminDeleteUserHandler(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		mockSetup      func(*MockAdminService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "Успешное удаление пользователя",
			userID: "user-2",
			mockSetup: func(admin *MockAdminService) {
				admin.On("DeleteUser", mock.Anything, "user-2").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "User deleted successfully",
		},
		{
			name:   "Пользователь не найден",
			userID: "ghost",
			mockSetup: func(admin *MockAdminService) {
				admin.On("DeleteUser", mock.Anything, "ghost").Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "User not found",
		},
		{
			name:   "Попытка удалить администратора",
			userID: "admin-1",
			mockSetup: func(admin *MockAdminService) {
				admin.On("DeleteUser", mock.Anything, "admin-1").Return(service.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Cannot delete admin user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAdmin := new(MockAdminService)
			tt.mockSetup(mockAdmin)
			handler := newTestHandlers(new(MockAuthService), new(MockIdeaService), mockAdmin)

			req := httptest.NewRequest("DELETE", "/api/admin/users/"+tt.userID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.userID})
			rec := httptest.NewRecorder()

			handler.AdminDeleteUser(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.expectedMsg, body["message"])
			mockAdmin.AssertExpectations(t)
		})
	}
}

func TestAdminDeleteIdeaHandler(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockAdminService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "Успешное удаление идеи",
			mockSetup: func(admin *MockAdminService) {
				admin.On("DeleteIdea", mock.Anything, "idea-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Idea deleted successfully",
		},
		{
			name: "Идея не найдена",
			mockSetup: func(admin *MockAdminService) {
				admin.On("DeleteIdea", mock.Anything, "idea-1").Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Idea not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAdmin := new(MockAdminService)
			tt.mockSetup(mockAdmin)
			handler := newTestHandlers(new(MockAuthService), new(MockIdeaService), mockAdmin)

			req := httptest.NewRequest("DELETE", "/api/admin/ideas/idea-1", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "idea-1"})
			rec := httptest.NewRecorder()

			handler.AdminDeleteIdea(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.expectedMsg, body["message"])
			mockAdmin.AssertExpectations(t)
		})
	}
}
