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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookAppointmentHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/confirm_appointment"
	deactivateWindowHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/deactivate_window"
	getAppointmentHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/get_available_slots"
	getProviderAppointmentsHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/get_provider_appointments"
	getStudentAppointmentsHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/get_student_appointments"
	listWindowsHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/list_windows"
	markNoShowHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/mark_no_show"
	rescheduleAppointmentHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/reschedule_appointment"
	setWindowHandler "github.com/campuscare/PSC-SchedulingService/internal/api/handlers/set_window"
	"github.com/campuscare/PSC-SchedulingService/internal/api/middleware"
	"github.com/campuscare/PSC-SchedulingService/internal/config"
	appointmentRepo "github.com/campuscare/PSC-SchedulingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/campuscare/PSC-SchedulingService/internal/infra/storage/availability"
	notifierClient "github.com/campuscare/PSC-SchedulingService/internal/integrations/notifier"
	appointmentsService "github.com/campuscare/PSC-SchedulingService/internal/service/appointments"
	availabilityService "github.com/campuscare/PSC-SchedulingService/internal/service/availability"
	bookAppointmentUC "github.com/campuscare/PSC-SchedulingService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/campuscare/PSC-SchedulingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/campuscare/PSC-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/campuscare/PSC-SchedulingService/pkg/dbmetrics"
	"github.com/campuscare/PSC-SchedulingService/pkg/logger"
	"github.com/campuscare/PSC-SchedulingService/pkg/metrics"
	"github.com/campuscare/PSC-SchedulingService/pkg/simpletxmanager"
	"github.com/campuscare/PSC-SchedulingService/pkg/txmanager"
)

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

	log.Info("Starting PSC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент notification service
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		cfg.Notifier.Enabled,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (enabled=%v, url=%s, timeout=%ds)",
		cfg.Notifier.Enabled, cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		notifier,
		appointmentsService.RealTimeProvider{},
		cfg.Booking.NoShowGraceMinutes,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		txMgr,
		notifier,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		txMgr,
		notifier,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	markNoShow := markNoShowHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getStudentAppointments := getStudentAppointmentsHandler.NewHandler(appointmentSvc, log)
	getProviderAppointments := getProviderAppointmentsHandler.NewHandler(appointmentSvc, log)
	setWindow := setWindowHandler.NewHandler(availabilitySvc, log)
	deactivateWindow := deactivateWindowHandler.NewHandler(availabilitySvc, log)
	listWindows := listWindowsHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты провайдера
	api.HandleFunc("/providers/{providerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Окна доступности провайдера
	api.HandleFunc("/providers/{providerId}/windows",
		listWindows.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Записи ---
	// Бронирование записи
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Переходы жизненного цикла
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// История записей студента
	protected.HandleFunc("/students/{studentId}/appointments", getStudentAppointments.Handle).Methods(http.MethodGet)

	// Расписание провайдера
	protected.HandleFunc("/providers/{providerId}/appointments", getProviderAppointments.Handle).Methods(http.MethodGet)

	// --- Управление окнами доступности (для провайдеров) ---
	protected.HandleFunc("/providers/{providerId}/windows", setWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/windows/{windowId}/deactivate", deactivateWindow.Handle).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
