package handlers

import (
	"net/http"

	"github.com/Tarek-Mahm0ud/backend-idea-collector/internal/database"
)

// HealthHandler проверяет доступность БД
func HealthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			WriteError(w, "Database unavailable", http.StatusInternalServerError)
			return
		}

		WriteJSON(w, map[string]interface{}{
			"success": true,
			"status":  "ok",
		}, http.StatusOK)
	}
}
