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

	"innkeep/internal/api"
	"innkeep/internal/config"
	"innkeep/internal/database"
	"innkeep/internal/events"
	"innkeep/internal/export"
	"innkeep/internal/logging"
	"innkeep/internal/metrics"
	"innkeep/internal/models"
	"innkeep/internal/repository"
	"innkeep/internal/service"
	"innkeep/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	if err := seedCatalog(db, &logger); err != nil {
		return err
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewEventBus()
	eventBus.Subscribe(events.EventBookingCreated, func(e *events.Event) error {
		logger.Info().Str("event_type", e.Type).RawJSON("payload", e.Payload).Msg("booking event")
		return nil
	})

	outboxWorker := worker.NewOutboxWorker(
		db, redisClient, worker.RetryPolicy{},
		cfg.Outbox.QueueKey, cfg.Outbox.DeadLetterKey,
		time.Duration(cfg.Outbox.PollIntervalMS)*time.Millisecond,
		cfg.Outbox.BatchSize,
		&logger,
	)
	go outboxWorker.Start(ctx)

	drafts := initDraftRepository(cfg, redisClient, &logger)

	hotelService := service.NewHotelService(db, &logger)
	roomService := service.NewRoomService(db, &logger)
	bookingService := service.NewBookingService(db, eventBus, outboxWorker, &logger)
	occupancyService := service.NewOccupancyService(db, eventBus, outboxWorker, &logger)
	reportService := service.NewReportService(db, &logger)
	draftService := service.NewDraftService(drafts, db, bookingService, &logger)
	exporter := export.NewScheduleExporter(db, cfg.Exports.Path, &logger)

	if cfg.Backup.Enabled {
		backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backup.Start(ctx)
	}

	startMetrics(ctx, cfg, &logger)

	httpServer := api.NewServer(
		cfg.API,
		hotelService, roomService, bookingService,
		occupancyService, reportService, draftService,
		exporter,
		&logger,
	)

	return serve(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// seedCatalog загружает стартовый набор отелей и номеров из YAML.
// Повторный запуск пропускает уже существующие записи.
func seedCatalog(db *database.DB, logger *zerolog.Logger) error {
	seedPath := os.Getenv("SEED_PATH")
	if seedPath == "" {
		seedPath = "configs/seed.yaml"
	}

	data, err := os.ReadFile(seedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		logger.Error().Err(err).Str("seed_path", seedPath).Msg("read seed")
		return err
	}

	// decimal.Decimal не парсится напрямую из YAML, поэтому цена — строка.
	var seed struct {
		Hotels []struct {
			Name       string `yaml:"name"`
			Address    string `yaml:"address"`
			Phone      string `yaml:"phone"`
			Email      string `yaml:"email"`
			OwnerName  string `yaml:"owner_name"`
			OwnerEmail string `yaml:"owner_email"`
			Rooms      []struct {
				RoomNumber    string `yaml:"room_number"`
				RoomType      string `yaml:"room_type"`
				PricePerNight string `yaml:"price_per_night"`
				Capacity      int64  `yaml:"capacity"`
			} `yaml:"rooms"`
		} `yaml:"hotels"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		logger.Error().Err(err).Str("seed_path", seedPath).Msg("parse seed")
		return err
	}

	ctx := context.Background()
	existing, err := db.ListHotels(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]int64, len(existing))
	for _, h := range existing {
		known[h.Name] = h.ID
	}

	for _, entry := range seed.Hotels {
		hotelID, ok := known[entry.Name]
		if !ok {
			hotel := models.Hotel{
				Name:       entry.Name,
				Address:    entry.Address,
				Phone:      entry.Phone,
				Email:      entry.Email,
				OwnerName:  entry.OwnerName,
				OwnerEmail: entry.OwnerEmail,
				IsActive:   true,
			}
			if err := db.CreateHotel(ctx, &hotel); err != nil {
				return err
			}
			hotelID = hotel.ID
			logger.Info().Str("name", hotel.Name).Int64("hotel_id", hotelID).Msg("seeded hotel")
		}

		rooms, err := db.ListActiveRooms(ctx, hotelID)
		if err != nil {
			return err
		}
		knownRooms := make(map[string]bool, len(rooms))
		for _, r := range rooms {
			knownRooms[r.RoomNumber] = true
		}

		for _, seedRoom := range entry.Rooms {
			if knownRooms[seedRoom.RoomNumber] {
				continue
			}
			price, err := decimal.NewFromString(seedRoom.PricePerNight)
			if err != nil {
				return fmt.Errorf("seed room %s: bad price %q: %w", seedRoom.RoomNumber, seedRoom.PricePerNight, err)
			}
			room := models.Room{
				HotelID:       hotelID,
				RoomNumber:    seedRoom.RoomNumber,
				RoomType:      seedRoom.RoomType,
				PricePerNight: price,
				Capacity:      seedRoom.Capacity,
				IsActive:      true,
			}
			if err := db.CreateRoom(ctx, &room); err != nil {
				return err
			}
		}
	}
	return nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

func initDraftRepository(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) *repository.FailoverDraftRepository {
	ttl := time.Duration(cfg.Drafts.TTLSeconds) * time.Second
	memory := repository.NewMemoryDraftRepository(ttl)
	if redisClient == nil {
		return repository.NewFailoverDraftRepository(memory, memory, logger)
	}
	primary := repository.NewRedisDraftRepository(redisClient, ttl)
	return repository.NewFailoverDraftRepository(primary, memory, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func serve(ctx context.Context, httpServer *api.Server, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
