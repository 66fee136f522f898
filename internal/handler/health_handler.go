package handler

import (
	"context"
	"time"

	"medqbank/internal/domain"
	"medqbank/internal/dto"
	"medqbank/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// DBPinger is satisfied by *sqlx.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the database and cache are reachable.
type HealthHandler struct {
	db    DBPinger
	cache domain.Cache
}

func NewHealthHandler(db DBPinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Health check
// @Description Pings the database and the cache; 503 when the database is down
// @Tags ops
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "up", Cache: "up"}
	status := fiber.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Error("Health check: database unreachable", zap.Error(err))
		resp.Status, resp.Database = "unavailable", "down"
		status = fiber.StatusServiceUnavailable
	}

	switch {
	case h.cache == nil:
		resp.Cache = "disabled"
	default:
		if err := h.cache.Ping(ctx); err != nil {
			// The API degrades without Redis, so this is not fatal.
			logger.Get().Warn("Health check: cache unreachable", zap.Error(err))
			resp.Cache = "down"
			if status == fiber.StatusOK {
				resp.Status = "degraded"
			}
		}
	}
	return c.Status(status).JSON(resp)
}
