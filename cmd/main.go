package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	bookingDraftsHandler "github.com/m04kA/BookEasy/internal/api/handlers/booking_drafts"
	businessDirectoryHandler "github.com/m04kA/BookEasy/internal/api/handlers/business_directory"
	cancelAppointmentHandler "github.com/m04kA/BookEasy/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/BookEasy/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/BookEasy/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/BookEasy/internal/api/handlers/get_available_slots"
	getOwnerAppointmentsHandler "github.com/m04kA/BookEasy/internal/api/handlers/get_owner_appointments"
	getOwnerBusinessHandler "github.com/m04kA/BookEasy/internal/api/handlers/get_owner_business"
	listAppointmentsHandler "github.com/m04kA/BookEasy/internal/api/handlers/list_appointments"
	ownerAuthHandler "github.com/m04kA/BookEasy/internal/api/handlers/owner_auth"
	ownerServicesHandler "github.com/m04kA/BookEasy/internal/api/handlers/owner_services"
	updateAppointmentHandler "github.com/m04kA/BookEasy/internal/api/handlers/update_appointment"
	updateOwnerBusinessHandler "github.com/m04kA/BookEasy/internal/api/handlers/update_owner_business"
	"github.com/m04kA/BookEasy/internal/api/middleware"
	"github.com/m04kA/BookEasy/internal/config"
	"github.com/m04kA/BookEasy/internal/infra/queue"
	"github.com/m04kA/BookEasy/internal/infra/storage/draft"
	appointmentsService "github.com/m04kA/BookEasy/internal/service/appointments"
	authService "github.com/m04kA/BookEasy/internal/service/auth"
	businessesService "github.com/m04kA/BookEasy/internal/service/businesses"
	bookingFlowUC "github.com/m04kA/BookEasy/internal/usecase/booking_flow"
	createAppointmentUC "github.com/m04kA/BookEasy/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/BookEasy/internal/usecase/get_available_slots"
	"github.com/m04kA/BookEasy/pkg/dbmetrics"
	"github.com/m04kA/BookEasy/pkg/logger"
	"github.com/m04kA/BookEasy/pkg/metrics"
	"github.com/m04kA/BookEasy/pkg/types"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting BookEasy...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.MetricsCollector
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище бизнесов и записей
	store, err := openStorage(cfg, dbCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Redis: черновики записи и rate limit
	var (
		redisClient *redis.Client
		drafts      bookingFlowUC.DraftStore
	)
	draftTTL := time.Duration(cfg.Booking.DraftTTLMinutes) * time.Minute

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer redisClient.Close()

		drafts = draft.NewRedisStore(redisClient, draftTTL)
		log.Info("Booking drafts stored in redis (addr=%s, ttl=%s)", cfg.Redis.Addr, draftTTL)
	} else {
		drafts = draft.NewMemoryStore(draftTTL)
		log.Info("Booking drafts stored in memory (ttl=%s)", draftTTL)
	}

	// RabbitMQ: события о записях
	var publisher createAppointmentUC.EventPublisher = queue.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher := queue.NewPublisher(cfg.RabbitMQ.URL)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Appointment events published to RabbitMQ")
	}

	// Параметры сетки слотов
	gridStart, err := types.NewTimeStringFromString(cfg.Booking.GridStart)
	if err != nil {
		log.Fatal("Invalid booking.grid_start: %v", err)
	}
	gridEnd, err := types.NewTimeStringFromString(cfg.Booking.GridEnd)
	if err != nil {
		log.Fatal("Invalid booking.grid_end: %v", err)
	}
	location := cfg.Booking.Location()

	// Инициализируем сервисы
	businessSvc := businessesService.NewService(
		store.businesses,
		store.appointments,
		businessesService.Settings{FeaturedLimit: cfg.Booking.FeaturedLimit, Location: location},
		log,
	)
	appointmentSvc := appointmentsService.NewService(
		store.appointments,
		store.tx,
		publisher,
		metricsCollector,
		appointmentsService.Settings{
			Location:      location,
			SlotMinutes:   cfg.Booking.SlotIntervalMinutes,
			DurationAware: cfg.Booking.DurationAwareBlocking,
		},
		log,
	)
	authSvc := authService.NewService(
		store.businesses,
		businessSvc,
		authService.Settings{
			Secret:     cfg.Auth.JWTSecret,
			TokenTTL:   time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
			Issuer:     cfg.Auth.Issuer,
			BcryptCost: cfg.Auth.BcryptCost,
		},
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.appointments,
		getAvailableSlotsUC.Settings{
			GridStart:       gridStart,
			GridEnd:         gridEnd,
			IntervalMinutes: cfg.Booking.SlotIntervalMinutes,
			DisplayDuration: cfg.Booking.SlotDisplayDuration,
			DurationAware:   cfg.Booking.DurationAwareBlocking,
		},
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.appointments,
		store.businesses,
		store.tx,
		publisher,
		metricsCollector,
		createAppointmentUC.Settings{
			SlotMinutes:   cfg.Booking.SlotIntervalMinutes,
			DurationAware: cfg.Booking.DurationAwareBlocking,
		},
		log,
	)
	bookingFlow := bookingFlowUC.NewFlow(
		drafts,
		store.businesses,
		getAvailableSlotsUseCase,
		createAppointmentUseCase,
		log,
	)

	// Инициализируем handlers
	businessDirectory := businessDirectoryHandler.NewHandler(businessSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentSvc, log)
	bookingDrafts := bookingDraftsHandler.NewHandler(bookingFlow, log)
	ownerAuth := ownerAuthHandler.NewHandler(authSvc, log)
	getOwnerBusiness := getOwnerBusinessHandler.NewHandler(businessSvc, log)
	updateOwnerBusiness := updateOwnerBusinessHandler.NewHandler(businessSvc, log)
	getOwnerAppointments := getOwnerAppointmentsHandler.NewHandler(appointmentSvc, log)
	ownerServices := ownerServicesHandler.NewHandler(businessSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		if redisClient == nil {
			log.Warn("Rate limit requires redis, skipping")
		} else {
			limiter := middleware.NewRateLimiter(
				redisClient,
				cfg.RateLimit.Requests,
				time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
				log,
			)
			api.Use(limiter.Middleware)
			log.Info("Rate limit enabled: %d requests per %ds", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
		}
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог бизнесов ---
	// search и featured регистрируются раньше /{businessId}
	api.HandleFunc("/businesses", businessDirectory.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/businesses/search", businessDirectory.HandleSearch).Methods(http.MethodGet)
	api.HandleFunc("/businesses/featured", businessDirectory.HandleFeatured).Methods(http.MethodGet)
	api.HandleFunc("/businesses/category/{category}", businessDirectory.HandleByCategory).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId:[0-9]+}", businessDirectory.HandleGet).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/businesses/{businessId:[0-9]+}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Пошаговая запись ---
	api.HandleFunc("/businesses/{businessId:[0-9]+}/drafts", bookingDrafts.HandleStart).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}", bookingDrafts.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}/slots", bookingDrafts.HandleSlots).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}/service", bookingDrafts.HandleSelectService).Methods(http.MethodPut)
	api.HandleFunc("/drafts/{draftId}/datetime", bookingDrafts.HandleSelectDateTime).Methods(http.MethodPut)
	api.HandleFunc("/drafts/{draftId}/customer", bookingDrafts.HandleCustomer).Methods(http.MethodPut)
	api.HandleFunc("/drafts/{draftId}/back", bookingDrafts.HandleBack).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/submit", bookingDrafts.HandleSubmit).Methods(http.MethodPost)

	// --- Владельцы ---
	api.HandleFunc("/owners/register", ownerAuth.HandleRegister).Methods(http.MethodPost)
	api.HandleFunc("/owners/login", ownerAuth.HandleLogin).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer)
	// ============================================================

	protected := api.PathPrefix("/owner").Subrouter()
	protected.Use(middleware.Auth(authSvc))

	protected.HandleFunc("/business", getOwnerBusiness.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/business", updateOwnerBusiness.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/dashboard", getOwnerBusiness.HandleDashboard).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", getOwnerAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.HandleDelete).Methods(http.MethodDelete)
	protected.HandleFunc("/services", ownerServices.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/services", ownerServices.HandleReplace).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", ownerServices.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", ownerServices.HandleDelete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.Server.CORSOrigins)(r),
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
