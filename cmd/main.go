package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	bookingFlowHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/booking_flow"
	checkoutBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/checkout_booking"
	createBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/decline_booking"
	deleteBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_booking"
	getBookingHistoryHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_booking_history"
	getDeclinedBookingsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_declined_bookings"
	getRoomAvailabilityHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_room_availability"
	listBookingsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/list_bookings"
	reportsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/reports"
	roomsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/rooms"
	searchRoomsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/search_rooms"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	flowStore "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/flow"
	reportRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/report"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	mailRelayClient "github.com/m04kA/SMC-HotelBookingService/internal/integrations/mailrelay"
	bookingsService "github.com/m04kA/SMC-HotelBookingService/internal/service/bookings"
	reportsService "github.com/m04kA/SMC-HotelBookingService/internal/service/reports"
	roomsService "github.com/m04kA/SMC-HotelBookingService/internal/service/rooms"
	bookingFlowUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/booking_flow"
	checkoutBookingUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/checkout_booking"
	createBookingUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	declineBookingUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/decline_booking"
	getRoomAvailabilityUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_room_availability"
	searchRoomsUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/search_available_rooms"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/metrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

// flowJanitorInterval период очистки истекших сценариев бронирования
const flowJanitorInterval = time.Minute

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-HotelBookingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	// Методы *metrics.Metrics безопасны для nil, поэтому при выключенных метриках передается nil
	var metricsCollector *metrics.Metrics
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

	// Обертка над БД: без коллектора метрики не снимаются
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	roomRepository := roomRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	reportRepository := reportRepo.NewRepository(wrappedDB)
	flows := flowStore.NewStore(cfg.Booking.FlowTTL())

	// Движок доступности
	engine := availability.NewEngine(cfg.Booking.Policy())
	log.Info("Availability engine initialized (checkout_policy=%s)", engine.Policy())

	// Почтовый релей: при выключенной отправке use cases получают nil
	var (
		confirmationNotifier createBookingUC.Notifier
		declineNotifier      declineBookingUC.Notifier
	)
	if cfg.Notifier.Enabled {
		mailClient := mailRelayClient.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		confirmationNotifier = mailClient
		declineNotifier = mailClient
		log.Info("Mail relay client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	} else {
		log.Warn("Mail relay disabled: confirmation emails will not be sent")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	roomSvc := roomsService.NewService(roomRepository, bookingRepository, txMgr, log)
	reportSvc := reportsService.NewService(reportRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		roomRepository,
		bookingRepository,
		engine,
		confirmationNotifier,
		txMgr,
		metricsCollector,
		cfg.Booking.StoreTimeout(),
		log,
	)
	getRoomAvailabilityUseCase := getRoomAvailabilityUC.NewUseCase(
		roomRepository,
		bookingRepository,
		engine,
		cfg.Booking.StoreTimeout(),
		log,
	)
	searchRoomsUseCase := searchRoomsUC.NewUseCase(
		roomRepository,
		bookingRepository,
		engine,
		cfg.Booking.StoreTimeout(),
		log,
	)
	checkoutBookingUseCase := checkoutBookingUC.NewUseCase(bookingRepository, txMgr, log)
	declineBookingUseCase := declineBookingUC.NewUseCase(
		bookingRepository,
		declineNotifier,
		txMgr,
		metricsCollector,
		log,
	)
	bookingFlowUseCase := bookingFlowUC.NewUseCase(
		flows,
		searchRoomsUseCase,
		getRoomAvailabilityUseCase,
		createBookingUseCase,
		log,
	)

	// Очистка истекших сценариев
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go flows.RunJanitor(janitorCtx, flowJanitorInterval, metricsCollector.SetActiveFlows)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingHistory := getBookingHistoryHandler.NewHandler(bookingSvc, log)
	getDeclinedBookings := getDeclinedBookingsHandler.NewHandler(bookingSvc, log)
	checkoutBooking := checkoutBookingHandler.NewHandler(checkoutBookingUseCase, log)
	declineBooking := declineBookingHandler.NewHandler(declineBookingUseCase, log)
	getRoomAvailability := getRoomAvailabilityHandler.NewHandler(getRoomAvailabilityUseCase, log)
	searchRooms := searchRoomsHandler.NewHandler(searchRoomsUseCase, log)
	rooms := roomsHandler.NewHandler(roomSvc, log)
	bookingFlow := bookingFlowHandler.NewHandler(bookingFlowUseCase, log)
	reports := reportsHandler.NewHandler(reportSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог номеров ---
	api.HandleFunc("/rooms", rooms.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/search", searchRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}", rooms.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/availability", getRoomAvailability.Handle).Methods(http.MethodGet)

	// --- Онлайн-бронирование гостем ---
	api.HandleFunc("/flows", bookingFlow.Start).Methods(http.MethodPost)
	api.HandleFunc("/flows/{token}", bookingFlow.Get).Methods(http.MethodGet)
	api.HandleFunc("/flows/{token}/dates", bookingFlow.SubmitDates).Methods(http.MethodPost)
	api.HandleFunc("/flows/{token}/room", bookingFlow.SelectRoom).Methods(http.MethodPost)
	api.HandleFunc("/flows/{token}/guest", bookingFlow.SubmitGuest).Methods(http.MethodPost)
	api.HandleFunc("/flows/{token}/back", bookingFlow.Back).Methods(http.MethodPost)
	api.HandleFunc("/flows/{token}/confirm", bookingFlow.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/flows/{token}/reset", bookingFlow.Reset).Methods(http.MethodPost)

	// --- Жалобы гостей ---
	api.HandleFunc("/complaints", reports.CreateComplaint).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (X-User-ID и роль staff или admin)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.Auth)
	staff.Use(middleware.RequireRole(middleware.RoleStaff))

	// --- Бронирования ---
	staff.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/history", getBookingHistory.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/declined", getDeclinedBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/checkout", checkoutBooking.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/decline", declineBooking.Handle).Methods(http.MethodPost)

	// --- Номера ---
	staff.HandleFunc("/rooms/{roomId}/status", rooms.UpdateStatus).Methods(http.MethodPatch)

	// --- Отчеты ---
	staff.HandleFunc("/reports", reports.CreateStaffReport).Methods(http.MethodPost)
	staff.HandleFunc("/reports/{kind}", reports.List).Methods(http.MethodGet)
	staff.HandleFunc("/reports/{kind}/{reportId:[0-9]+}/resolve", reports.Resolve).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.RequireRole(middleware.RoleAdmin))

	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/rooms", rooms.Create).Methods(http.MethodPost)
	admin.HandleFunc("/rooms/{roomId}", rooms.Update).Methods(http.MethodPut)
	admin.HandleFunc("/rooms/{roomId}", rooms.Delete).Methods(http.MethodDelete)

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

	stopJanitor()
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
