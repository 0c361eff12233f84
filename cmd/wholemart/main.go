package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mkraj/wholemart/config"
	"github.com/mkraj/wholemart/internal/auth"
	handler "github.com/mkraj/wholemart/internal/handler/http"
	"github.com/mkraj/wholemart/internal/hub"
	"github.com/mkraj/wholemart/internal/middleware"
	"github.com/mkraj/wholemart/internal/repository"
	"github.com/mkraj/wholemart/internal/repository/postgres"
	"github.com/mkraj/wholemart/internal/service"
	"github.com/mkraj/wholemart/internal/worker"
	"go.uber.org/zap"
)

const authTokenKey = "9c1185a5c5e9fc54612808977ee8f548"

// newLogger creates logger with log level
func newLogger(level string) (*zap.Logger, error) {

	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	err = db.Migrate()
	if err != nil {
		logger.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKey, err := hex.DecodeString(authTokenKey)
	if err != nil {
		logger.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	// dependency injection
	// notifications
	eventHub := hub.New(logger)
	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(notificationRepo, eventHub, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	streamHandler := handler.NewStreamHandler(eventHub, logger)

	// user
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo, notificationService, logger)

	// auth
	authService := service.NewAuthService(userRepo, token)
	userHandler := handler.NewUserHandler(userService, authService)

	// order
	orderRepo := repository.NewOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, notificationService, logger)
	orderHandler := handler.NewOrderHandler(orderService)

	// back office
	adminHandler := handler.NewAdminHandler(orderService, userService)

	// payment proof reminders
	reminderProcessor := worker.NewReminderProcessor(orderService, cfg.ReminderInterval, cfg.ReminderMaxAge, logger)
	go reminderProcessor.ProcessReminders(ctx)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger))

	router.Post("/api/user/register", userHandler.RegisterUser())
	router.Post("/api/user/login", userHandler.LoginUser())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))

		group.Post("/api/orders", orderHandler.PlaceOrder())
		group.Get("/api/orders", orderHandler.ListUserOrders())
		group.Get("/api/orders/{orderID}", orderHandler.GetOrder())
		group.Post("/api/orders/{orderID}/payment-proof", orderHandler.UploadPaymentProof())

		group.Get("/api/notifications", notificationHandler.ListNotifications())
		group.Get("/api/notifications/stream", streamHandler.Stream())
		group.Patch("/api/notifications/read-all", notificationHandler.MarkAllRead())
		group.Patch("/api/notifications/{notificationID}/read", notificationHandler.MarkRead())
		group.Delete("/api/notifications/{notificationID}", notificationHandler.DeleteNotification())
	})

	// routes that require the admin role
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))
		group.Use(handler.AdminOnly)

		group.Get("/api/admin/orders", adminHandler.ListAllOrders())
		group.Post("/api/admin/orders/{orderID}/mark-paid", adminHandler.MarkPaid())
		group.Post("/api/admin/orders/{orderID}/reject-payment", adminHandler.RejectPayment())
		group.Post("/api/admin/orders/{orderID}/dispatch", adminHandler.Dispatch())
		group.Post("/api/admin/orders/{orderID}/deliver", adminHandler.MarkDelivered())
		group.Post("/api/admin/orders/{orderID}/cancel", adminHandler.Cancel())
		group.Post("/api/admin/users/{userID}/status", adminHandler.SetAccountStatus())
	})

	logger.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
