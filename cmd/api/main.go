package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ventasapp/ventas-api/internal/application/service"
	"github.com/ventasapp/ventas-api/internal/config"
	"github.com/ventasapp/ventas-api/internal/infrastructure/database"
	"github.com/ventasapp/ventas-api/internal/infrastructure/moderation"
	"github.com/ventasapp/ventas-api/internal/infrastructure/repository"
	"github.com/ventasapp/ventas-api/internal/infrastructure/storage"
	"github.com/ventasapp/ventas-api/internal/presentation/http/handler"
	"github.com/ventasapp/ventas-api/internal/presentation/http/routes"
	"github.com/ventasapp/ventas-api/pkg/email"
	"github.com/ventasapp/ventas-api/pkg/oauth"
	"github.com/ventasapp/ventas-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	var logger *zap.Logger
	var err error
	if cfg.App.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Initialize product image storage and moderation
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(logger))
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	imageModerator, err := moderation.NewRekognitionModerator(&cfg.Moderation, &cfg.Storage, moderation.WithLogger(logger))
	if err != nil {
		logger.Fatal("Failed to initialize image moderation", zap.Error(err))
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	profileService := service.NewProfileService(profileRepo)
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo, objectStorage, imageModerator, service.ProductImageConfig{
		MaxUploadSize: cfg.Image.MaxUploadSize,
		MaxWidth:      cfg.Image.MaxWidth,
		Quality:       cfg.Image.Quality,
		Prefix:        cfg.Storage.Prefix,
	}, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, clientRepo, productRepo)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Client:    handler.NewClientHandler(clientService),
		Product:   handler.NewProductHandler(productService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Profile:   handler.NewProfileHandler(profileService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("environment", cfg.App.Env),
	)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
