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

	cancelBookingHandler "github.com/agendahub/scheduling-service/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/agendahub/scheduling-service/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/agendahub/scheduling-service/internal/api/handlers/create_booking"
	expandRecurrencesHandler "github.com/agendahub/scheduling-service/internal/api/handlers/expand_recurrences"
	getAvailableSlotsHandler "github.com/agendahub/scheduling-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/agendahub/scheduling-service/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/agendahub/scheduling-service/internal/api/handlers/get_client_bookings"
	getScheduleHandler "github.com/agendahub/scheduling-service/internal/api/handlers/get_schedule"
	getTenantBookingsHandler "github.com/agendahub/scheduling-service/internal/api/handlers/get_tenant_bookings"
	listProfessionalsHandler "github.com/agendahub/scheduling-service/internal/api/handlers/list_professionals"
	listServicesHandler "github.com/agendahub/scheduling-service/internal/api/handlers/list_services"
	processIntentHandler "github.com/agendahub/scheduling-service/internal/api/handlers/process_intent"
	updateBookingStatusHandler "github.com/agendahub/scheduling-service/internal/api/handlers/update_booking_status"
	"github.com/agendahub/scheduling-service/internal/api/middleware"
	"github.com/agendahub/scheduling-service/internal/config"
	"github.com/agendahub/scheduling-service/internal/events"
	bookingRepo "github.com/agendahub/scheduling-service/internal/infra/storage/booking"
	botlogRepo "github.com/agendahub/scheduling-service/internal/infra/storage/botlog"
	catalogRepo "github.com/agendahub/scheduling-service/internal/infra/storage/catalog"
	clientRepo "github.com/agendahub/scheduling-service/internal/infra/storage/client"
	recurrenceRepo "github.com/agendahub/scheduling-service/internal/infra/storage/recurrence"
	scheduleRepo "github.com/agendahub/scheduling-service/internal/infra/storage/schedule"
	tenantRepo "github.com/agendahub/scheduling-service/internal/infra/storage/tenant"
	recurrenceJob "github.com/agendahub/scheduling-service/internal/jobs/recurrence"
	bookingsService "github.com/agendahub/scheduling-service/internal/service/bookings"
	catalogService "github.com/agendahub/scheduling-service/internal/service/catalog"
	createBookingUC "github.com/agendahub/scheduling-service/internal/usecase/create_booking"
	expandRecurrencesUC "github.com/agendahub/scheduling-service/internal/usecase/expand_recurrences"
	getAvailableSlotsUC "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
	processIntentUC "github.com/agendahub/scheduling-service/internal/usecase/process_intent"
	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
	"github.com/agendahub/scheduling-service/pkg/logger"
	"github.com/agendahub/scheduling-service/pkg/metrics"
	"github.com/agendahub/scheduling-service/pkg/simpletxmanager"
	"github.com/agendahub/scheduling-service/pkg/txmanager"
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

	log.Info("Starting scheduling-service...")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Repositories and transaction manager, instrumented when metrics are on
	var (
		bookingRepository    *bookingRepo.Repository
		clientRepository     *clientRepo.Repository
		catalogRepository    *catalogRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		recurrenceRepository *recurrenceRepo.Repository
		tenantRepository     *tenantRepo.Repository
		botlogRepository     *botlogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		recurrenceRepository = recurrenceRepo.NewRepository(wrappedDB)
		tenantRepository = tenantRepo.NewRepository(wrappedDB)
		botlogRepository = botlogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		recurrenceRepository = recurrenceRepo.NewRepository(db)
		tenantRepository = tenantRepo.NewRepository(db)
		botlogRepository = botlogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Services
	emitter := events.NewLogEmitter(log)
	bookingSvc := bookingsService.NewService(bookingRepository, emitter, log)
	catalogSvc := catalogService.NewService(catalogRepository, scheduleRepository, log)

	// Use cases: the availability calculator feeds the conflict detector,
	// which in turn serves the intent router and the recurrence expander
	availabilityUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		tenantRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		clientRepository,
		catalogRepository,
		availabilityUseCase,
		txMgr,
		log,
	)

	expandRecurrencesUseCase := expandRecurrencesUC.NewUseCase(
		recurrenceRepository,
		bookingRepository,
		catalogRepository,
		tenantRepository,
		createBookingUseCase,
		log,
	)

	processIntentUseCase := processIntentUC.NewUseCase(
		catalogRepository,
		bookingSvc,
		createBookingUseCase,
		availabilityUseCase,
		botlogRepository,
		log,
	)

	runner := recurrenceJob.NewRunner(expandRecurrencesUseCase, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listProfessionals := listProfessionalsHandler.NewHandler(catalogSvc, log)
	getSchedule := getScheduleHandler.NewHandler(catalogSvc, log)
	processIntent := processIntentHandler.NewHandler(processIntentUseCase, log)
	expandRecurrences := expandRecurrencesHandler.NewHandler(runner, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Operational routes, no tenant key
	r.HandleFunc("/internal/recurrences/expand", expandRecurrences.Handle).Methods(http.MethodPost)

	// Tenant API, authenticated by X-API-Key
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(tenantRepository, log))

	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getTenantBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	api.HandleFunc("/clients/{id}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals", listProfessionals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/working-hours", getSchedule.HandleWorkingHours).Methods(http.MethodGet)
	api.HandleFunc("/schedule/special-dates", getSchedule.HandleSpecialDates).Methods(http.MethodGet)

	api.HandleFunc("/bot/commands", processIntent.Handle).Methods(http.MethodPost)

	// Periodic recurrence expansion
	stopSchedulerCh := make(chan struct{})
	if cfg.Recurrence.Enabled {
		go func() {
			ticker := time.NewTicker(time.Duration(cfg.Recurrence.IntervalMinutes) * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					result, err := runner.Run(context.Background(), nil, cfg.Recurrence.HorizonDays)
					if err != nil {
						log.Error("Scheduled recurrence run failed: %v", err)
						continue
					}
					log.Info("Scheduled recurrence run: rules=%d, created=%d, skipped=%d, errors=%d",
						result.Rules, result.Created, result.Skipped, result.Errors)
				case <-stopSchedulerCh:
					return
				}
			}
		}()
		log.Info("Recurrence scheduler started (every %d minutes)", cfg.Recurrence.IntervalMinutes)
	}

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

	if cfg.Recurrence.Enabled {
		close(stopSchedulerCh)
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
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
