package main

import (
	"database/sql"
	"log"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"turakBack/internal/config"
	"turakBack/internal/geo"
	"turakBack/internal/handlers"
	"turakBack/internal/repositories"
	"turakBack/internal/services"
	"turakBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	cfg      config.Config

	wsManager *WebSocketManager

	userRepo        *repositories.UserRepository
	listingRepo     *repositories.ListingRepository
	savedSearchRepo *repositories.SavedSearchRepository

	bookingService      *services.BookingService
	messageService      *services.MessageService
	notificationService *services.NotificationService

	userHandler         *handlers.UserHandler
	listingHandler      *handlers.ListingHandler
	bookingHandler      *handlers.BookingHandler
	chatHandler         *handlers.ChatHandler
	messageHandler      *handlers.MessageHandler
	reviewHandler       *handlers.ReviewHandler
	reportHandler       *handlers.ReportHandler
	notificationHandler *handlers.NotificationHandler
	savedSearchHandler  *handlers.SavedSearchHandler
	paymentHandler      *handlers.PaymentHandler
	placesHandler       *handlers.PlacesHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	listingRepo := &repositories.ListingRepository{DB: db}
	favoriteRepo := &repositories.ListingFavoriteRepository{DB: db}
	bookingRepo := &repositories.BookingRepository{DB: db}
	chatRepo := &repositories.ChatRepository{DB: db}
	messageRepo := &repositories.MessageRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	reportRepo := &repositories.ReportRepository{DB: db}
	notificationRepo := &repositories.NotificationRepository{DB: db}
	savedSearchRepo := &repositories.SavedSearchRepository{DB: db}
	paymentRepo := &repositories.PaymentRepository{DB: db}

	// Infrastructure clients
	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}
	locator := geo.NewListingLocator(rdb)
	catalog := geo.NewCatalogClient(nil, cfg.Places.APIKey, cfg.Places.RegionID)

	acquiring, err := services.NewAcquiringService(services.AcquiringConfig{
		Username:       cfg.Payment.Username,
		Password:       cfg.Payment.Password,
		TerminalID:     cfg.Payment.TerminalID,
		BaseURL:        cfg.Payment.BaseURL,
		SuccessBackURL: cfg.Payment.SuccessBackURL,
		FailureBackURL: cfg.Payment.FailureBackURL,
		CallbackURL:    cfg.Payment.CallbackURL,
	})
	if err != nil {
		errorLog.Fatal(err)
	}

	// Services
	notificationService := &services.NotificationService{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		FCMClient:        fcmClient,
		ErrorLog:         errorLog,
	}
	userService := &services.UserService{
		UserRepo:     userRepo,
		TokenManager: tokenManager,
		SigningKey:   cfg.JWT.SigningKey,
	}
	listingService := &services.ListingService{
		ListingRepo:  listingRepo,
		FavoriteRepo: favoriteRepo,
		Locator:      locator,
		Notification: notificationService,
		ErrorLog:     errorLog,
	}
	bookingService := &services.BookingService{
		BookingRepo:  bookingRepo,
		ListingRepo:  listingRepo,
		Notification: notificationService,
	}
	chatService := &services.ChatService{ChatRepo: chatRepo, ListingRepo: listingRepo}
	messageService := &services.MessageService{
		MessageRepo:  messageRepo,
		ChatRepo:     chatRepo,
		Notification: notificationService,
	}
	reviewService := &services.ReviewService{ReviewRepo: reviewRepo, ListingRepo: listingRepo}
	reportService := &services.ReportService{ReportRepo: reportRepo}
	savedSearchService := &services.SavedSearchService{SavedSearchRepo: savedSearchRepo}
	paymentService := &services.PaymentService{
		PaymentRepo:  paymentRepo,
		BookingRepo:  bookingRepo,
		Acquiring:    acquiring,
		Notification: notificationService,
		WebhookKey:   cfg.Payment.WebhookKey,
	}
	placesService := &services.PlacesService{
		ListingRepo: listingRepo,
		Catalog:     catalog,
		Redis:       rdb,
	}

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		db:                  db,
		cfg:                 cfg,
		wsManager:           NewWebSocketManager(),
		userRepo:            userRepo,
		listingRepo:         listingRepo,
		savedSearchRepo:     savedSearchRepo,
		bookingService:      bookingService,
		messageService:      messageService,
		notificationService: notificationService,
		userHandler:         &handlers.UserHandler{Service: userService},
		listingHandler:      &handlers.ListingHandler{Service: listingService},
		bookingHandler:      &handlers.BookingHandler{Service: bookingService},
		chatHandler:         &handlers.ChatHandler{Service: chatService},
		messageHandler:      &handlers.MessageHandler{Service: messageService},
		reviewHandler:       &handlers.ReviewHandler{Service: reviewService},
		reportHandler:       &handlers.ReportHandler{Service: reportService},
		notificationHandler: &handlers.NotificationHandler{Service: notificationService},
		savedSearchHandler:  &handlers.SavedSearchHandler{Service: savedSearchService},
		paymentHandler:      &handlers.PaymentHandler{Service: paymentService},
		placesHandler:       &handlers.PlacesHandler{Service: placesService},
	}
}
