package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindhaven/config"
	"mindhaven/cron"
	"mindhaven/database"
	bookingRepoPkg "mindhaven/database/repository/booking"
	programRepoPkg "mindhaven/database/repository/program"
	roomRepoPkg "mindhaven/database/repository/room"
	subscriptionRepoPkg "mindhaven/database/repository/subscription"
	systemRepoPkg "mindhaven/database/repository/system"
	timeslotRepoPkg "mindhaven/database/repository/timeslot"
	userRepoPkg "mindhaven/database/repository/user"
	"mindhaven/handlers"
	"mindhaven/routes"
	"mindhaven/services/admin"
	"mindhaven/services/booking"
	"mindhaven/services/catalog"
	"mindhaven/services/notification"
	"mindhaven/services/room"
	"mindhaven/services/subscription"
	"mindhaven/services/tasks"
	"mindhaven/services/user"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := userRepoPkg.EnsureUserIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure user indexes: %v", err)
	}
	if err := roomRepoPkg.EnsureRoomIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure room indexes: %v", err)
	}
	cancel()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	programRepo := programRepoPkg.NewMongoProgramRepo()
	subscriptionRepo := subscriptionRepoPkg.NewMongoSubscriptionRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	timeslotRepo := timeslotRepoPkg.NewMongoTimeSlotRepo()
	roomRepo := roomRepoPkg.NewMongoRoomRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	systemRepo := systemRepoPkg.NewMongoSystemRepo()

	// background task dispatcher.
	dispatcher := tasks.NewDispatcher()
	defer dispatcher.Close()

	// services.
	notificationService := notification.NewNotificationService(userRepo)
	catalogService := &catalog.DefaultCatalogService{Repo: programRepo}
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Mailer: notificationService,
	}
	lifecycleService := &subscription.DefaultLifecycleService{
		Subs:     subscriptionRepo,
		Programs: programRepo,
		Rooms:    roomRepo,
		Users:    userRepo,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		Slots:     timeslotRepo,
		MeetLinks: &booking.DefaultMeetLinkProvider{},
		Notifier:  dispatcher,
	}
	roomService := &room.DefaultRoomService{
		Repo:  roomRepo,
		Users: userRepo,
		Bus:   room.NewRedisMessageBus(),
	}
	adminService := &admin.DefaultAdminService{
		System:  systemRepo,
		Users:   userRepo,
		Subs:    subscriptionRepo,
		Catalog: catalogService,
	}

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := adminService.EnsureInitialized(initCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to initialize platform: %v", err)
	}
	initCancel()

	// background workers.
	cron.InitNotificationWorker(notificationService)
	cron.InitBillingSweep(subscriptionRepo)
	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache":  utils.GetCacheClient(),
		"auth":   utils.GetAuthCacheClient(),
		"otp":    utils.GetOTPCacheClient(),
		"pubsub": utils.GetPubSubClient(),
	}, database.MongoClient)

	// Register routes with the assembled handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Users:         handlers.NewUserHandler(userService),
		Catalog:       handlers.NewCatalogHandler(catalogService),
		Subscriptions: handlers.NewSubscriptionHandler(lifecycleService),
		Bookings:      handlers.NewBookingHandler(bookingService),
		Slots:         handlers.NewTimeSlotHandler(timeslotRepo),
		Rooms:         handlers.NewRoomHandler(roomService),
		Admin:         handlers.NewAdminHandler(adminService, lifecycleService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
