package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/cmd/app"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/config"
	handlers "github.com/Tarek-Mahm0ud/backend-idea-collector/internal/handler"
	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}
	if cfg.JWTRefreshSecretKey == "" {
		log.Fatal("JWT_REFRESH_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Route not found", http.StatusNotFound)
	})

	router.HandleFunc("/health", handlers.HealthHandler(db)).Methods(http.MethodGet)

	// публичные маршруты аутентификации
	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", handler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	// маршруты идей, только для аутентифицированных
	ideas := router.PathPrefix("/api/ideas").Subrouter()
	ideas.Use(mux.MiddlewareFunc(middleware.AuthMiddleware(cfg)))
	ideas.HandleFunc("", handler.GetIdeas).Methods(http.MethodGet)
	ideas.HandleFunc("", handler.CreateIdea).Methods(http.MethodPost)
	ideas.HandleFunc("/{id}", handler.DeleteIdea).Methods(http.MethodDelete)
	ideas.HandleFunc("/{id}/attachments", handler.AddAttachment).Methods(http.MethodPost)
	ideas.HandleFunc("/{id}/attachments/{attachmentId}", handler.DeleteAttachment).Methods(http.MethodDelete)

	// админские маршруты
	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(
		mux.MiddlewareFunc(middleware.AuthMiddleware(cfg)),
		mux.MiddlewareFunc(middleware.AdminOnlyMiddleware(cfg)),
	)
	admin.HandleFunc("/users", handler.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/ideas", handler.GetAllIdeas).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", handler.AdminDeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/ideas/{id}", handler.AdminDeleteIdea).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
