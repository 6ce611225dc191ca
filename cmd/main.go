package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getMyBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_my_bookings"
	getServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_service"
	healthHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_services"
	updateServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/cache/servicecache"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/mongostore"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	userServiceClient "github.com/m04kA/SMC-SalonBooking/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

// bookingStore методы хранилища бронирований, общие для всех драйверов
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingsFilter) (int, error)
	CountByStatus(ctx context.Context, filter domain.BookingsFilter) ([]domain.StatusCount, error)
	Cancel(ctx context.Context, id string, at time.Time) (*domain.Booking, error)
}

type eventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking *domain.Booking) error
	PublishBookingCancelled(ctx context.Context, booking *domain.Booking, cancelledBy string) error
	Close() error
}

// storage выбранный драйвер хранилища
type storage struct {
	bookings bookingStore
	services servicecache.Repository
	ping     healthHandler.PingFunc
	close    func(ctx context.Context) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml")

	hours, err := cfg.Schedule.OperatingHours()
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}
	log.Info("Operating hours %s-%s, step=%dm, overflow=%s, %d slots per day",
		hours.Open, hours.Close, hours.StepMinutes, hours.Overflow, len(hours.Slots()))

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}

	// Кэш каталога услуг в Redis (опционально)
	services := store.services
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		services = servicecache.New(services, redisClient, time.Duration(cfg.Redis.TTL)*time.Second, log)
		log.Info("Service cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Публикация событий в Kafka (опционально)
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
		)
		if err != nil {
			log.Fatal("Failed to initialize kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
		log.Info("Booking events enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%q timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		store.bookings,
		services,
		userClient,
		publisher,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(
		services,
		store.bookings,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		services,
		userClient,
		publisher,
		metricsCollector,
		hours,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.bookings,
		services,
		hours,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	health := healthHandler.NewHandler(store.ping, log)

	auth := middleware.NewAuth(cfg.Auth.Mode, cfg.Auth.JWTSecret, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты услуги на дату
	api.HandleFunc("/bookings/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют аутентификации)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Бронирования ---
	// Создание бронирования (с ограничением частоты)
	createHandler := http.Handler(http.HandlerFunc(createBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		createHandler = limiter.Middleware(createHandler)
		log.Info("Booking creation rate limit: %.2f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", createHandler).Methods(http.MethodPost)

	// Бронирования текущего пользователя
	protected.HandleFunc("/bookings/my", getMyBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPut, http.MethodPatch)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/date/{date}", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}
	if err := store.close(shutdownCtx); err != nil {
		log.Error("Failed to close storage: %v", err)
	}

	log.Info("Server exited")
}

// openStorage подключает драйвер из [storage].driver
func openStorage(cfg *config.Config, collector *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		mem := memory.NewStore()
		log.Warn("Using in-memory storage: data is lost on restart")
		return &storage{
			bookings: mem.Bookings(),
			services: mem.Services(),
			ping:     func(context.Context) error { return nil },
			close:    func(context.Context) error { return nil },
		}, nil

	case config.DriverMongo:
		client, err := mongostore.Connect(context.Background(), cfg.Mongo.URI,
			time.Duration(cfg.Mongo.ConnectTimeout)*time.Second)
		if err != nil {
			return nil, err
		}
		mongoStore, err := mongostore.NewStore(context.Background(), client.Database(cfg.Mongo.Database))
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info("Successfully connected to mongo (db=%s)", cfg.Mongo.Database)
		return &storage{
			bookings: mongoStore.Bookings(),
			services: mongoStore.Services(),
			ping:     func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:    func(ctx context.Context) error { return client.Disconnect(ctx) },
		}, nil

	default:
		db, err := openPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// Репозитории с обёрткой метрик или без
		var executor dbmetrics.DBExecutor = db
		if collector != nil {
			executor = dbmetrics.WrapWithDefault(db, collector, cfg.Metrics.ServiceName, stopCh)
			log.Info("Database metrics collection started")
		}

		return &storage{
			bookings: bookingRepo.NewRepository(executor),
			services: serviceRepo.NewRepository(executor),
			ping:     db.PingContext,
			close:    func(context.Context) error { return db.Close() },
		}, nil
	}
}

func openPostgres(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
