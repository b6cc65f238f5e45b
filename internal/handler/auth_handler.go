package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/models"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/repository"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	Success      bool         `json:"success"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type LoginResponse struct {
	Success      bool         `json:"success"`
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type RefreshResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// validateRegister собирает массив ошибок по полям, как и остальные 400 ответы
func validateRegister(req RegisterRequest) []ValidationError {
	var errs []ValidationError

	if utf8.RuneCountInString(strings.TrimSpace(req.Username)) < 3 {
		errs = append(errs, ValidationError{
			Field:   "username",
			Message: "Username must be at least 3 characters long",
		})
	}

	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		errs = append(errs, ValidationError{
			Field:   "email",
			Message: "Please include a valid email",
		})
	}

	if req.Password == "" {
		errs = append(errs, ValidationError{
			Field:   "password",
			Message: "Password is required",
		})
	}

	return errs
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if errs := validateRegister(req); len(errs) > 0 {
		WriteValidationErrors(w, errs)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid request data", http.StatusBadRequest)
		return
	}

	serviceReq := service.CreateUserRequest{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	}

	user, accessToken, refreshToken, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			WriteError(w, "Email already exists", http.StatusBadRequest)
		case errors.Is(err, repository.ErrUsernameTaken):
			WriteError(w, "Username already taken", http.StatusBadRequest)
		default:
			WriteError(w, "Server error during registration", http.StatusInternalServerError)
		}
		return
	}

	response := RegisterResponse{
		Success:      true,
		Token:        accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:       user.UserID,
			Username: user.Username,
			Email:    user.Email,
		},
	}

	WriteJSON(w, response, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid request data", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// единый ответ: не раскрываем, существует ли email
			WriteMessage(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		WriteMessage(w, "Server error", http.StatusInternalServerError)
		return
	}

	response := LoginResponse{
		Success:      true,
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.RefreshToken == "" {
		WriteError(w, "Refresh token required", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.AuthService.RefreshAccessToken(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	WriteJSON(w, RefreshResponse{Success: true, Token: accessToken}, http.StatusOK)
}
