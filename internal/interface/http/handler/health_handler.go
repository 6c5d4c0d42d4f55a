package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/campus-market-backend/internal/domain/repository"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	reservations repository.ReservationRepository
	redis        *redis.Client
}

// NewHealthHandler создаёт новый health handler. redisClient может быть nil.
func NewHealthHandler(reservations repository.ReservationRepository, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{reservations: reservations, redis: redisClient}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Reservations int               `json:"reservations"`
	Checks       map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := map[string]string{"reservation_store": "healthy"}
	status := "healthy"

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.redis.Ping(ctx).Err(); err != nil {
			// Redis нужен только лимитеру, сервис продолжает работать.
			checks["redis"] = "degraded: " + err.Error()
			status = "degraded"
		} else {
			checks["redis"] = "healthy"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC(),
		Reservations: h.reservations.Count(c.Request.Context()),
		Checks:       checks,
	})
}
