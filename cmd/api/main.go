package main

import (
	"os"
	"strconv"

	"github.com/akithw/supermart-golang/internal/auth"
	"github.com/akithw/supermart-golang/internal/database"
	"github.com/akithw/supermart-golang/internal/email"
	"github.com/akithw/supermart-golang/internal/handlers"
	"github.com/akithw/supermart-golang/internal/notify"
	"github.com/akithw/supermart-golang/internal/routes"
	"github.com/akithw/supermart-golang/internal/services"
	"github.com/akithw/supermart-golang/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using environment variables")
	}

	if err := auth.Secret(); err != nil {
		logger.Fatal("auth configuration", zap.Error(err))
	}

	db, err := database.OpenDB(os.Getenv("DB_DSN"))
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	orderStore := store.NewOrderStore(db)
	lineStore := store.NewOrderLineStore(db)
	productStore := store.NewProductStore(db)
	notificationStore := store.NewNotificationStore(db)
	userStore := store.NewUserStore(db)
	masterDataStore := store.NewMasterDataStore(db)

	notifier := notify.New(notificationStore, emailSender(logger), logger, 0)
	notifier.Start()
	defer notifier.Stop()

	orderService := services.NewOrderService(orderStore, lineStore, productStore, userStore, notifier, logger)
	lineService := services.NewOrderLineService(lineStore, orderStore, productStore, userStore, logger)
	inventoryService := services.NewInventoryService(productStore, lineStore, masterDataStore, notifier, logger)

	h := &handlers.Handlers{
		Orders:        orderService,
		Lines:         lineService,
		Inventory:     inventoryService,
		Notifications: notificationStore,
		Logger:        logger,
	}

	router := routes.SetupRouter(h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// emailSender picks SMTP when configured, otherwise logs outgoing mail. Keeps
// local development working without a mail server.
func emailSender(logger *zap.Logger) notify.EmailSender {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Info("SMTP not configured, emails will be logged")
		return &email.LogSender{Logger: logger}
	}
	return email.NewSMTPSender(
		host,
		envInt("SMTP_PORT", 587),
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("SMTP_FROM"),
	)
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}
