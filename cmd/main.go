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

	bookingFlowHandler "github.com/41hairstudio/HS-BookingService/internal/api/handlers/booking_flow"
	cancelReservationHandler "github.com/41hairstudio/HS-BookingService/internal/api/handlers/cancel_reservation"
	getAvailabilityHandler "github.com/41hairstudio/HS-BookingService/internal/api/handlers/get_availability"
	getCalendarFileHandler "github.com/41hairstudio/HS-BookingService/internal/api/handlers/get_calendar_file"
	getReservationsHandler "github.com/41hairstudio/HS-BookingService/internal/api/handlers/get_reservations_by_phone"
	getScheduleHandler "github.com/41hairstudio/HS-BookingService/internal/api/handlers/get_schedule"
	rescheduleHandler "github.com/41hairstudio/HS-BookingService/internal/api/handlers/reschedule_reservation"
	"github.com/41hairstudio/HS-BookingService/internal/api/middleware"
	"github.com/41hairstudio/HS-BookingService/internal/bookingflow"
	"github.com/41hairstudio/HS-BookingService/internal/calendar"
	"github.com/41hairstudio/HS-BookingService/internal/config"
	reservationRepo "github.com/41hairstudio/HS-BookingService/internal/infra/storage/reservation"
	nagerClient "github.com/41hairstudio/HS-BookingService/internal/integrations/nager"
	notionClient "github.com/41hairstudio/HS-BookingService/internal/integrations/notion"
	"github.com/41hairstudio/HS-BookingService/internal/notifications"
	"github.com/41hairstudio/HS-BookingService/internal/schedule"
	blackoutsService "github.com/41hairstudio/HS-BookingService/internal/service/blackouts"
	reservationsService "github.com/41hairstudio/HS-BookingService/internal/service/reservations"
	createBookingUC "github.com/41hairstudio/HS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/41hairstudio/HS-BookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/41hairstudio/HS-BookingService/internal/usecase/reschedule_booking"
	"github.com/41hairstudio/HS-BookingService/pkg/dbmetrics"
	"github.com/41hairstudio/HS-BookingService/pkg/logger"
	"github.com/41hairstudio/HS-BookingService/pkg/metrics"
	"github.com/41hairstudio/HS-BookingService/pkg/nooptxmanager"
	"github.com/41hairstudio/HS-BookingService/pkg/simpletxmanager"
	"github.com/41hairstudio/HS-BookingService/pkg/txmanager"
)

// reservationStore объединяет операции хранилища, нужные usecase-слою
// Реализуется и Postgres репозиторием, и Notion хранилищем
type reservationStore interface {
	createBookingUC.ReservationStore
	rescheduleBookingUC.ReservationStore
	reservationsService.ReservationStore
}

// txManager интерфейс транзакционного менеджера для usecases
type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting HS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Временная зона заведения
	loc, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище бронирований: Postgres или Notion
	var (
		store reservationStore
		txMgr txManager
	)

	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")

			store = reservationRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			store = reservationRepo.NewRepository(db)
			txMgr = simpletxmanager.NewTransactionManager(db)
		}

	case config.StorageBackendNotion:
		client := notionClient.NewClient(
			cfg.Notion.BaseURL,
			cfg.Notion.Token,
			cfg.Notion.DatabaseID,
			time.Duration(cfg.Notion.Timeout)*time.Second,
			log,
		)
		store = notionClient.NewStore(client, loc, log)
		// Notion не поддерживает транзакции: защита от двойного
		// бронирования ограничена проверкой перед записью
		txMgr = nooptxmanager.NewTransactionManager()
		log.Info("Using Notion storage backend (database=%s)", cfg.Notion.DatabaseID)

	default:
		log.Fatal("Unknown storage backend: %s", cfg.Storage.Backend)
	}

	// Провайдер праздничных дней
	holidayClient := nagerClient.NewClient(
		cfg.Holidays.BaseURL,
		cfg.Holidays.CountryCode,
		time.Duration(cfg.Holidays.Timeout)*time.Second,
		log,
	)
	blackouts := blackoutsService.NewService(holidayClient, cfg.Holidays.Enabled, log)
	log.Info("Holiday provider initialized (country=%s, enabled=%v)",
		cfg.Holidays.CountryCode, cfg.Holidays.Enabled)

	// Расписание работы
	weeklySchedule, err := schedule.New(cfg.Schedule)
	if err != nil {
		log.Fatal("Failed to build schedule: %v", err)
	}

	// Уведомления
	sender := notifications.NewSMTPSender(
		cfg.Notifications.SMTPHost,
		cfg.Notifications.SMTPPort,
		cfg.Notifications.From,
	)
	dispatcher := notifications.NewDispatcher(
		sender,
		cfg.Notifications.Enabled,
		cfg.Notifications.OwnerEmail,
		cfg.Business.Name,
		cfg.Business.Address,
		log,
	)

	// Календарные файлы
	calendarBuilder := calendar.NewBuilder(
		cfg.Business.Name,
		cfg.Business.Address,
		cfg.Business.CalendarDomain,
		loc,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store, blackouts, weeklySchedule, loc, log)
	createBookingUseCase := createBookingUC.NewUseCase(store, blackouts, weeklySchedule, dispatcher, txMgr, loc, log)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(store, blackouts, weeklySchedule, txMgr, loc, log)

	// Сервис управления бронированиями
	reservationsSvc := reservationsService.NewService(store, loc, log)

	// Менеджер сценариев записи
	flowManager := bookingflow.NewManager(getAvailableSlotsUseCase, createBookingUseCase, log)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(weeklySchedule, log)
	bookingFlow := bookingFlowHandler.NewHandler(flowManager, log)
	getReservations := getReservationsHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	rescheduleReservation := rescheduleHandler.NewHandler(rescheduleBookingUseCase, log)
	getCalendarFile := getCalendarFileHandler.NewHandler(reservationsSvc, calendarBuilder, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Доступные слоты и расписание
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Пошаговый сценарий записи
	api.HandleFunc("/booking-flows", bookingFlow.HandleStart).Methods(http.MethodPost)
	api.HandleFunc("/booking-flows/{flowId}", bookingFlow.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/booking-flows/{flowId}", bookingFlow.HandleAbandon).Methods(http.MethodDelete)
	api.HandleFunc("/booking-flows/{flowId}/date", bookingFlow.HandleSelectDate).Methods(http.MethodPost)
	api.HandleFunc("/booking-flows/{flowId}/time", bookingFlow.HandleSelectTime).Methods(http.MethodPost)
	api.HandleFunc("/booking-flows/{flowId}/details", bookingFlow.HandleSubmitDetails).Methods(http.MethodPost)
	api.HandleFunc("/booking-flows/{flowId}/confirm", bookingFlow.HandleConfirm).Methods(http.MethodPost)
	api.HandleFunc("/booking-flows/{flowId}/back", bookingFlow.HandleBack).Methods(http.MethodPost)

	// Управление существующими бронированиями
	api.HandleFunc("/reservations", getReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/reservations/{reservationId}", rescheduleReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}/calendar", getCalendarFile.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
