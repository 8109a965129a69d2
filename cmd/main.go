package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/m04kA/SMC-PoolBooking/internal/api/handlers/create_booking"
	getBookingHistoryHandler "github.com/m04kA/SMC-PoolBooking/internal/api/handlers/get_booking_history"
	getPoolWorkloadHandler "github.com/m04kA/SMC-PoolBooking/internal/api/handlers/get_pool_workload"
	requestCodeHandler "github.com/m04kA/SMC-PoolBooking/internal/api/handlers/request_code"
	resetSessionHandler "github.com/m04kA/SMC-PoolBooking/internal/api/handlers/reset_session"
	verifyCodeHandler "github.com/m04kA/SMC-PoolBooking/internal/api/handlers/verify_code"
	"github.com/m04kA/SMC-PoolBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PoolBooking/internal/config"
	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	"github.com/m04kA/SMC-PoolBooking/internal/infra/storage/journal"
	sessionStorage "github.com/m04kA/SMC-PoolBooking/internal/infra/storage/session"
	crmClient "github.com/m04kA/SMC-PoolBooking/internal/integrations/crm"
	smsGatewayClient "github.com/m04kA/SMC-PoolBooking/internal/integrations/smsgateway"
	bookingsService "github.com/m04kA/SMC-PoolBooking/internal/service/bookings"
	verificationService "github.com/m04kA/SMC-PoolBooking/internal/service/verification"
	createBookingUC "github.com/m04kA/SMC-PoolBooking/internal/usecase/create_booking"
	getPoolWorkloadUC "github.com/m04kA/SMC-PoolBooking/internal/usecase/get_pool_workload"
	"github.com/m04kA/SMC-PoolBooking/pkg/logger"
	"github.com/m04kA/SMC-PoolBooking/pkg/metrics"
)

// sessionBackend хранилище сессий с блокировками (memory или redis)
type sessionBackend interface {
	verificationService.SessionStore
	verificationService.Locker
}

// bookingJournal журнал попыток бронирования (postgres или no-op)
type bookingJournal interface {
	createBookingUC.Journal
	bookingsService.JournalRepository
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

	log.Info("Starting SMC-PoolBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	location, err := cfg.Pool.Location()
	if err != nil {
		log.Fatal("Failed to load pool timezone: %v", err)
	}

	// Журнал попыток бронирования (опционально)
	var bookingsJournal bookingJournal = journal.Noop{}
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		bookingsJournal = journal.NewRepository(db)
	} else {
		log.Info("Database disabled, booking journal is not persisted")
	}

	// Хранилище сессий подтверждения
	sessionTTL := time.Duration(cfg.Verification.SessionTTL) * time.Second
	lockTTL := time.Duration(cfg.Verification.LockTTL) * time.Second

	var sessions sessionBackend
	switch cfg.Verification.Backend {
	case config.SessionBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		sessions = sessionStorage.NewRedisStore(redisClient, sessionTTL, lockTTL)
		log.Info("Verification sessions stored in redis (addr=%s)", cfg.Redis.Addr)
	default:
		sessions = sessionStorage.NewMemoryStore(sessionTTL, lockTTL)
		log.Info("Verification sessions stored in memory")
	}

	// Инициализируем интеграционных клиентов
	crm := crmClient.NewClient(
		cfg.CRM.URL,
		time.Duration(cfg.CRM.Timeout)*time.Second,
		log,
	).WithMetrics(metricsCollector)
	sms := smsGatewayClient.NewClient(
		cfg.SMS.URL,
		time.Duration(cfg.SMS.Timeout)*time.Second,
		log,
	).WithMetrics(metricsCollector)
	log.Info("Integration clients initialized (CRM=%s timeout=%ds, SMS=%s timeout=%ds)",
		cfg.CRM.URL, cfg.CRM.Timeout, cfg.SMS.URL, cfg.SMS.Timeout)

	slotSource := crmClient.NewSlotSource(crm, cfg.CRM.ServiceID, location, log)

	// Инициализируем сервисы
	verifier := verificationService.NewService(sessions, sessions, crm, metricsCollector, log)
	bookingSvc := bookingsService.NewService(bookingsJournal, verifier, log)

	// Инициализируем use cases
	getPoolWorkloadUseCase := getPoolWorkloadUC.NewUseCase(slotSource, workloadOptions(cfg, location), log)

	createBookingUseCase := createBookingUC.NewUseCase(
		verifier,
		crm,
		sms,
		bookingsJournal,
		metricsCollector,
		createBookingUC.SMSOptions{
			SenderID:             cfg.SMS.SenderID,
			UseRecipientTimeZone: cfg.SMS.UseRecipientTimeZone,
			Location:             location,
		},
		log,
	)

	// Инициализируем handlers
	getPoolWorkload := getPoolWorkloadHandler.NewHandler(getPoolWorkloadUseCase, log)
	requestCode := requestCodeHandler.NewHandler(verifier, log)
	verifyCode := verifyCodeHandler.NewHandler(verifier, log)
	resetSession := resetSessionHandler.NewHandler(verifier, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookingHistory := getBookingHistoryHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Загруженность бассейна по часам
	api.HandleFunc("/pool-workload", getPoolWorkload.Handle).Methods(http.MethodGet)

	// --- Подтверждение телефона ---
	api.HandleFunc("/verification/sessions", requestCode.Handle).Methods(http.MethodPost)
	api.HandleFunc("/verification/sessions/{sessionId}/verify", verifyCode.Handle).Methods(http.MethodPost)
	api.HandleFunc("/verification/sessions/{sessionId}", resetSession.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/verification/sessions/{sessionId}/bookings", getBookingHistory.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped gracefully")
}

func workloadOptions(cfg *config.Config, location *time.Location) getPoolWorkloadUC.Options {
	p := cfg.Pool

	weekdays := make([]time.Weekday, 0, len(p.BreakWeekdays))
	for _, wd := range p.BreakWeekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}

	opts := getPoolWorkloadUC.Options{
		ServiceID: cfg.CRM.ServiceID,
		Settings: domain.PoolSettings{
			TotalLanes:    p.TotalLanes,
			LaneCapacity:  p.LaneCapacity,
			OpenHour:      p.OpenHour,
			CloseHour:     p.CloseHour,
			BreakHour:     p.BreakHour,
			BreakWeekdays: weekdays,
		},
		Location:     location,
		MaxRangeDays: p.MaxRangeDays,
		LaneMode:     p.LaneMode,
	}
	if p.LaneMode == config.LaneModeLocation {
		// шаблон уже проверен в config.Validate
		opts.LanePattern = regexp.MustCompile(p.LanePattern)
	}
	return opts
}
