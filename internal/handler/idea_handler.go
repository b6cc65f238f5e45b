package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/middleware"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/service"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type PaginationResponse struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

type IdeasGetResponse struct {
	Success    bool               `json:"success"`
	Data       []models.Idea      `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

type IdeaCreateResponse struct {
	Success bool         `json:"success"`
	Data    *models.Idea `json:"data"`
}

type AttachmentResponse struct {
	Success bool               `json:"success"`
	Data    *models.Attachment `json:"data"`
}

func (h *Handlers) GetIdeas(w http.ResponseWriter, r *http.Request) {
	// параметры пагинации: нечисловые значения откатываются к значениям по умолчанию
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	ideaPage, err := h.IdeaService.ListIdeas(r.Context(), page, limit)
	if err != nil {
		WriteError(w, "Failed to fetch ideas", http.StatusInternalServerError)
		return
	}

	response := IdeasGetResponse{
		Success: true,
		Data:    ideaPage.Ideas,
		Pagination: PaginationResponse{
			Page:       ideaPage.Page,
			TotalPages: ideaPage.TotalPages,
			Total:      ideaPage.Total,
		},
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) CreateIdea(w http.ResponseWriter, r *http.Request) {
	// токен должен нести и username, и email
	username, _ := r.Context().Value(middleware.ContextUsername).(string)
	email, _ := r.Context().Value(middleware.ContextEmail).(string)
	if username == "" || email == "" {
		WriteError(w, "Invalid user data in token", http.StatusBadRequest)
		return
	}

	var req struct {
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		WriteValidationErrors(w, []ValidationError{{
			Field:   "description",
			Message: "Description cannot be empty",
		}})
		return
	}

	serviceReq := service.CreateIdeaRequest{
		Username:    username,
		Email:       email,
		Description: req.Description,
		Tags:        req.Tags,
	}

	idea, err := h.IdeaService.CreateIdea(r.Context(), serviceReq)
	if err != nil {
		WriteError(w, "Failed to create idea", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, IdeaCreateResponse{Success: true, Data: idea}, http.StatusCreated)
}

func (h *Handlers) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	ideaID := mux.Vars(r)["id"]

	email, _ := r.Context().Value(middleware.ContextEmail).(string)
	isAdmin := h.Cfg.IsAdminEmail(email)

	err := h.IdeaService.DeleteIdea(r.Context(), ideaID, email, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			WriteMessage(w, "Idea not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteMessage(w, "Not authorized to delete this idea", http.StatusForbidden)
		default:
			WriteError(w, "Failed to delete idea", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, map[string]interface{}{
		"success": true,
		"message": "Idea deleted successfully",
	}, http.StatusOK)
}

// разрешенные типы вложений
var allowedAttachmentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *Handlers) AddAttachment(w http.ResponseWriter, r *http.Request) {
	ideaID := mux.Vars(r)["id"]
	email, _ := r.Context().Value(middleware.ContextEmail).(string)

	// ограничение размера берется из конфига
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, fmt.Sprintf("File too large (max %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Failed to parse uploaded file", http.StatusBadRequest)
		}
		return
	}

	file, fileHeader, err := r.FormFile("attachment")
	if err != nil {
		WriteError(w, "Attachment file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedAttachmentTypes[contentType] {
		WriteError(w, "Unsupported file type. Allowed: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	attachment, err := h.IdeaService.AddAttachment(r.Context(), ideaID, email, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			WriteMessage(w, "Idea not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteMessage(w, "Not authorized to modify this idea", http.StatusForbidden)
		default:
			WriteError(w, "Failed to upload attachment", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, AttachmentResponse{Success: true, Data: attachment}, http.StatusCreated)
}

func (h *Handlers) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ideaID := vars["id"]
	attachmentID := vars["attachmentId"]

	email, _ := r.Context().Value(middleware.ContextEmail).(string)
	isAdmin := h.Cfg.IsAdminEmail(email)

	err := h.IdeaService.DeleteAttachment(r.Context(), ideaID, attachmentID, email, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			WriteMessage(w, "Attachment not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteMessage(w, "Not authorized to modify this idea", http.StatusForbidden)
		default:
			WriteError(w, "Failed to delete attachment", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, map[string]interface{}{
		"success": true,
		"message": "Attachment deleted successfully",
	}, http.StatusOK)
}
