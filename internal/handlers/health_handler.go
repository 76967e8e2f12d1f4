package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/database"
	"github.com/lovemypet/backend/internal/dto"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	store string
}

// NewHealthHandler reports on the given database; db is nil when the
// in-memory store is in use.
func NewHealthHandler(db *gorm.DB, store string) *HealthHandler {
	return &HealthHandler{db: db, store: store}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = "ok"
		if err := database.Ping(h.db); err != nil {
			dbStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Store:     h.store,
	})
}
