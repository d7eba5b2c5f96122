package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arenda/internal/api"
	"arenda/internal/config"
	"arenda/internal/database"
	"arenda/internal/domain"
	"arenda/internal/events"
	"arenda/internal/logging"
	"arenda/internal/metrics"
	"arenda/internal/notify"
	"arenda/internal/repository"
	"arenda/internal/service"
	"arenda/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	metrics.Register()

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации базы данных")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateStore := initRateLimitStore(ctx, cfg, &logger)

	notifier, err := notify.NewTelegramNotifier(cfg.Telegram, &logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Telegram notifier unavailable, notifications disabled")
		notifier = nil
	}

	notifyWorker := startNotifyWorker(ctx, cfg, db, notifier, &logger)

	eventBus := events.NewEventBus()
	subscribeNotifications(ctx, eventBus, notifyWorker, &logger)

	userService := service.NewUserService(db, &logger)
	itemService := service.NewItemService(db, userService, eventBus, &logger)
	requestService := service.NewRequestService(db, userService, &logger)
	bookingService := service.NewBookingService(db, userService, eventBus, &logger)

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	server := api.NewServer(cfg.HTTP, api.Services{
		Users:    userService,
		Items:    itemService,
		Requests: requestService,
		Bookings: bookingService,
	}, rateStore, &logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP shutdown error")
	}

	logger.Info().Msg("Shutdown complete.")
	return nil
}

func initRateLimitStore(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.RateLimitStore {
	fallback := repository.NewMemoryRateLimitStore()
	if cfg.Redis.Address == "" {
		return fallback
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable")
	}
	primary := repository.NewRedisRateLimitStore(redisClient)
	return repository.NewFailoverRateLimitStore(primary, fallback, logger)
}

func startNotifyWorker(ctx context.Context, cfg *config.Config, db *database.DB, notifier *notify.TelegramNotifier, logger *zerolog.Logger) *worker.NotifyWorker {
	if notifier == nil {
		return nil
	}

	retryPolicy := worker.RetryPolicy{
		MaxRetries:    cfg.Worker.MaxRetries,
		InitialDelay:  2 * time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 2,
	}
	w := worker.NewNotifyWorker(
		db, notifier, retryPolicy,
		time.Duration(cfg.Worker.PollIntervalSeconds)*time.Second,
		cfg.Worker.BatchSize, logger,
	)
	go w.Start(ctx)
	return w
}

// subscribeNotifications routes domain events into the outbox so the
// worker can deliver them with retries.
func subscribeNotifications(ctx context.Context, bus *events.EventBus, notifyWorker *worker.NotifyWorker, logger *zerolog.Logger) {
	if bus == nil || notifyWorker == nil {
		return
	}

	handler := func(ev *events.Event) error {
		if err := notifyWorker.Enqueue(ctx, ev.Type, ev.Payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: enqueue notification")
		}
		return nil
	}

	bus.Subscribe(events.EventBookingCreated, handler)
	bus.Subscribe(events.EventBookingApproved, handler)
	bus.Subscribe(events.EventBookingRejected, handler)
	bus.Subscribe(events.EventCommentAdded, handler)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", srv.Addr).Msg("metrics listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
