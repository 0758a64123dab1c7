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

	cancelAppointmentHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/create_appointment"
	createAvailabilityHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/create_availability"
	deleteAvailabilityHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/delete_availability"
	getAppointmentHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/get_available_slots"
	listAppointmentsHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/list_appointments"
	triggerSyncHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/trigger_sync"
	updateStatusHandler "github.com/apaddicto/APD-BookingService/internal/api/handlers/update_appointment_status"
	"github.com/apaddicto/APD-BookingService/internal/api/middleware"
	"github.com/apaddicto/APD-BookingService/internal/config"
	appointmentRepo "github.com/apaddicto/APD-BookingService/internal/infra/storage/appointment"
	googleCalendarClient "github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
	notifierClient "github.com/apaddicto/APD-BookingService/internal/integrations/notifier"
	appointmentsService "github.com/apaddicto/APD-BookingService/internal/service/appointments"
	autosyncService "github.com/apaddicto/APD-BookingService/internal/service/autosync"
	availabilityService "github.com/apaddicto/APD-BookingService/internal/service/availability"
	bookAppointmentUC "github.com/apaddicto/APD-BookingService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/apaddicto/APD-BookingService/internal/usecase/get_available_slots"
	reconcileCalendarUC "github.com/apaddicto/APD-BookingService/internal/usecase/reconcile_calendar"
	"github.com/apaddicto/APD-BookingService/pkg/dbmetrics"
	"github.com/apaddicto/APD-BookingService/pkg/logger"
	"github.com/apaddicto/APD-BookingService/pkg/metrics"
	"github.com/apaddicto/APD-BookingService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting APD-BookingService...")

	location, err := time.LoadLocation(cfg.Calendar.TimeZone)
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.Calendar.TimeZone, err)
	}

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
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
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	repository := appointmentRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Integrations. A misconfigured calendar is fatal: the service cannot
	// answer a single availability query without it.
	calendarClient, err := googleCalendarClient.NewClient(
		context.Background(),
		cfg.Calendar.CalendarID,
		cfg.Calendar.CredentialsFile,
		cfg.Calendar.TimeZone,
		time.Duration(cfg.Calendar.RequestTimeout)*time.Second,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize calendar client: %v", err)
	}
	log.Info("Calendar client initialized (calendar=%s, timeout=%ds)",
		cfg.Calendar.CalendarID, cfg.Calendar.RequestTimeout)

	notifier := notifierClient.NewClient(
		cfg.Notifications.ResendAPIKey,
		cfg.Notifications.FromAddress,
		cfg.Notifications.PracticeName,
		cfg.Notifications.Enabled,
		log,
	)

	// Use cases
	slotSettings := getAvailableSlotsUC.Settings{
		SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
		MinNoticeMinutes:    cfg.Booking.MinNoticeMinutes,
		MaxAdvanceDays:      cfg.Booking.MaxAdvanceDays,
		Location:            location,
	}
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(calendarClient, repository, slotSettings, log)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		repository,
		calendarClient,
		notifier,
		txMgr,
		bookAppointmentUC.Settings{
			SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
			MinNoticeMinutes:    cfg.Booking.MinNoticeMinutes,
			MaxAdvanceDays:      cfg.Booking.MaxAdvanceDays,
			Location:            location,
			PracticeName:        cfg.Notifications.PracticeName,
		},
		log,
	)

	reconcileUseCase := reconcileCalendarUC.NewUseCase(
		repository,
		calendarClient,
		notifier,
		reconcileCalendarUC.Settings{
			WindowDays:   cfg.Sync.WindowDays,
			Location:     location,
			PracticeName: cfg.Notifications.PracticeName,
		},
		log,
	)

	// Services
	appointmentsSvc := appointmentsService.NewService(repository, calendarClient, notifier, log)
	availabilitySvc := availabilityService.NewService(calendarClient, location, log)

	var autosyncMetrics autosyncService.Metrics
	if metricsCollector != nil {
		autosyncMetrics = metricsCollector
	}
	autosyncSvc := autosyncService.NewService(
		reconcileUseCase,
		autosyncMetrics,
		time.Duration(cfg.Sync.CacheDurationSeconds)*time.Second,
		time.Duration(cfg.Sync.PollingIntervalSeconds)*time.Second,
		log,
	)

	if cfg.Sync.AutoPollingEnabled {
		autosyncSvc.StartPolling()
	}

	// Handlers
	var bookingMetrics createAppointmentHandler.Metrics
	if metricsCollector != nil {
		bookingMetrics = metricsCollector
	}

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, autosyncSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(bookAppointmentUseCase, bookingMetrics, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	triggerSync := triggerSyncHandler.NewHandler(autosyncSvc, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{ref}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{ref}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Admin routes (X-Admin-Token)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return middleware.AdminAuth(cfg.Auth.AdminToken, next)
	})
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{ref}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{ref}/status", updateStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/availability/{eventId}", deleteAvailability.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/sync", triggerSync.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/sync/stats", triggerSync.HandleStats).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	if cfg.Sync.AutoPollingEnabled {
		autosyncSvc.StopPolling()
	}
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
		log.Error("Server shutdown error: %v", err)
	}

	log.Info("Server stopped")
}
