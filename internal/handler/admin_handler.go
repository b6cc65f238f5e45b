package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/service"
)

type AdminUsersResponse struct {
	Success bool          `json:"success"`
	Users   []models.User `json:"users"`
}

type AdminIdeasResponse struct {
	Success bool          `json:"success"`
	Ideas   []models.Idea `json:"ideas"`
}

// GetAllUsers возвращает всех пользователей; пароли не сериализуются
func (h *Handlers) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.ListUsers(r.Context())
	if err != nil {
		WriteMessage(w, "Error fetching users", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, AdminUsersResponse{Success: true, Users: users}, http.StatusOK)
}

func (h *Handlers) GetAllIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.AdminService.ListIdeas(r.Context())
	if err != nil {
		WriteMessage(w, "Error fetching ideas", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, AdminIdeasResponse{Success: true, Ideas: ideas}, http.StatusOK)
}

func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	err := h.AdminService.DeleteUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			WriteMessage(w, "User not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteMessage(w, "Cannot delete admin user", http.StatusForbidden)
		default:
			WriteMessage(w, "Error deleting user", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, map[string]interface{}{
		"success": true,
		"message": "User deleted successfully",
	}, http.StatusOK)
}

func (h *Handlers) AdminDeleteIdea(w http.ResponseWriter, r *http.Request) {
	ideaID := mux.Vars(r)["id"]

	err := h.AdminService.DeleteIdea(r.Context(), ideaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteMessage(w, "Idea not found", http.StatusNotFound)
			return
		}
		WriteMessage(w, "Error deleting idea", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"success": true,
		"message": "Idea deleted successfully",
	}, http.StatusOK)
}
