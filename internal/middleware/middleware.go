package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/config"
)

type contextKey string

// Ключи контекста для данных из access токена
const (
	ContextUserID   contextKey = "userID"
	ContextUsername contextKey = "username"
	ContextEmail    contextKey = "email"
)

type Middleware func(http.Handler) http.Handler

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorBody{Success: false, Message: message})
}

// AuthMiddleware проверяет JWT токен и добавляет данные пользователя в контекст.
// Повторного похода в БД нет: утверждениям токена доверяем до истечения срока.
// Единое сообщение об ошибке не раскрывает причину отказа.
func AuthMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeMessage(w, "Please authenticate", http.StatusUnauthorized)
				return
			}

			// формат "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeMessage(w, "Please authenticate", http.StatusUnauthorized)
				return
			}

			tokenString := parts[1]

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecretKey), nil
			})

			// просроченный или неподписанный токен отклоняется здесь же
			if err != nil || !token.Valid {
				writeMessage(w, "Please authenticate", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeMessage(w, "Please authenticate", http.StatusUnauthorized)
				return
			}

			userID, _ := claims["id"].(string)
			username, _ := claims["username"].(string)
			email, _ := claims["email"].(string)

			ctx := r.Context()
			ctx = context.WithValue(ctx, ContextUserID, userID)
			ctx = context.WithValue(ctx, ContextUsername, username)
			ctx = context.WithValue(ctx, ContextEmail, email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnlyMiddleware пропускает только пользователей из списка администраторов
func AdminOnlyMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := r.Context().Value(ContextEmail).(string)
			if !ok || !cfg.IsAdminEmail(email) {
				writeMessage(w, "Access denied. Admin only.", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Method: %s, URL: %s", r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
