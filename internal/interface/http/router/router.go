package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/ignatzorin/campus-market-backend/internal/config"
	"github.com/ignatzorin/campus-market-backend/internal/interface/http/handler"
	"github.com/ignatzorin/campus-market-backend/internal/interface/http/middleware"
)

// Handlers собирает все хэндлеры HTTP API.
type Handlers struct {
	Health      *handler.HealthHandler
	Fee         *handler.FeeHandler
	Reservation *handler.ReservationHandler
	WS          *handler.WSHandler
}

func SetupRouter(cfg *config.Config, rateLimitStore limiter.Store, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.ActorMiddleware())

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(rateLimitStore, cfg.RateLimitLimit, cfg.RateLimitPeriod))

	// Публичные маршруты
	api.GET("/fees/quote", h.Fee.Quote)
	api.GET("/reservations/:id", middleware.UUIDValidator("id"), h.Reservation.GetReservation)
	api.PATCH("/reservations/:id/status", middleware.UUIDValidator("id"), h.Reservation.UpdateStatus)
	api.GET("/ws", h.WS.Handle)

	// Маршруты от имени пользователя
	actor := api.Group("/")
	actor.Use(middleware.RequireActor())
	{
		actor.POST("/reservations", h.Reservation.CreateReservation)
		actor.POST("/reservations/release", h.Reservation.ConfirmRelease)
		actor.POST("/reservations/:id/handoff", middleware.UUIDValidator("id"), h.Reservation.ConfirmHandoff)
		actor.GET("/reservations/:id/handoff-code", middleware.UUIDValidator("id"), h.Reservation.HandoffCode)
		actor.GET("/reservations/:id/handoff-qr", middleware.UUIDValidator("id"), h.Reservation.HandoffQRCode)
		actor.GET("/me/reservations", h.Reservation.ListMyReservations)
	}

	return r
}
