package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/campus-market-backend/internal/config"
	"github.com/ignatzorin/campus-market-backend/internal/db"
	"github.com/ignatzorin/campus-market-backend/internal/domain/event"
	"github.com/ignatzorin/campus-market-backend/internal/goroutine"
	"github.com/ignatzorin/campus-market-backend/internal/infrastructure/messaging"
	"github.com/ignatzorin/campus-market-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/campus-market-backend/internal/interface/http/handler"
	"github.com/ignatzorin/campus-market-backend/internal/interface/http/middleware"
	httpRouter "github.com/ignatzorin/campus-market-backend/internal/interface/http/router"
	"github.com/ignatzorin/campus-market-backend/internal/logger"
	"github.com/ignatzorin/campus-market-backend/internal/usecase/reservation"
	"github.com/ignatzorin/campus-market-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logger.Init(cfg.LogLevel)
	if !cfg.IsProduction() {
		logger.SetTextFormatter()
	}
	logger.Log.WithField("env", cfg.Env).Info("main: запуск сервиса броней")

	// Хранилище броней живёт в памяти процесса.
	store := persistence.NewReservationStore()

	// Redis нужен только для общих счётчиков rate limit.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = db.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("main: %v", err)
		}
		defer safeClose("redis", redisClient)
	}

	rateLimitStore, err := middleware.NewRateLimitStore(redisClient)
	if err != nil {
		log.Fatalf("main: %v", err)
	}

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	goroutine.SafeGo(hub.Run)

	publishers := event.MultiPublisher{hub}
	if cfg.RabbitMQURL != "" {
		rabbit, err := messaging.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			// Брокер необязателен: без него события уходят только в WebSocket.
			logger.Log.WithError(err).Warn("main: RabbitMQ недоступен, события в очередь не отправляются")
		} else {
			defer safeClose("rabbitmq", rabbit)
			publishers = append(publishers, rabbit)
		}
	}

	// Use cases.
	createUC := reservation.NewCreateReservationUseCase(store, publishers)
	getUC := reservation.NewGetReservationUseCase(store)
	updateUC := reservation.NewUpdateReservationStatusUseCase(store, publishers)
	handoffUC := reservation.NewConfirmHandoffUseCase(store, publishers)
	releaseUC := reservation.NewConfirmReleaseUseCase(store, publishers)
	listMineUC := reservation.NewListMyReservationsUseCase(store)
	quoteUC := reservation.NewQuoteFeeUseCase()

	// HTTP хэндлеры.
	handlers := httpRouter.Handlers{
		Health:      handler.NewHealthHandler(store, redisClient),
		Fee:         handler.NewFeeHandler(quoteUC),
		Reservation: handler.NewReservationHandler(createUC, getUC, updateUC, handoffUC, releaseUC, listMineUC),
		WS:          handler.NewWSHandler(hub, cfg.AllowedOrigins),
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, rateLimitStore, handlers)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает внешнее соединение.
func safeClose(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Log.WithError(err).Errorf("main: ошибка закрытия %s", name)
	}
}
