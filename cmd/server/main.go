package main

import (
	"log"

	"law_shop_app_go/config"
	"law_shop_app_go/db"
	"law_shop_app_go/handlers"
	"law_shop_app_go/middleware"
	"law_shop_app_go/models"
	"law_shop_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	conn, err := db.Open(cfg.DBPath, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close(conn)

	// Run migrations
	if err := db.AutoMigrate(conn,
		&models.Client{},
		&models.Case{},
		&models.ClientCase{},
		&models.Portal{},
		&models.Document{},
		&models.WebhookLog{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Best-effort collaborators
	var contacts services.ContactsSyncer = services.NoopContactsSyncer{}
	if cfg.GoogleContactsEnabled {
		contacts = services.NewGoogleContactsClient(cfg.GoogleContactsToken)
	}
	storage := services.NewStorage(cfg)

	h := handlers.New(conn, cfg, contacts, storage)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	e.GET("/health", h.HealthHandler)

	// Public intake endpoint: anonymous callers create leads, attorney
	// tokens create active clients
	publicFormLimiter := middleware.NewPublicFormRateLimiter()
	e.POST("/api/clients/create", h.CreateClientHandler,
		publicFormLimiter.Middleware(),
		middleware.OptionalAttorney(cfg),
	)

	// Cal.com booking webhook (signature-verified, no bearer auth)
	e.POST("/api/webhooks/calcom", h.CalcomWebhookHandler)

	// Attorney-only routes
	attorney := e.Group("/api")
	attorney.Use(middleware.RequireAttorney(cfg))
	{
		attorney.GET("/clients", h.GetClientsHandler)
		attorney.GET("/clients/:id", h.GetClientHandler)
		attorney.PUT("/clients/:id", h.UpdateClientHandler)
		attorney.POST("/clients/:id/portal", h.CreatePortalHandler)

		attorney.GET("/cases", h.GetCasesHandler)
		attorney.GET("/cases/:id", h.GetCaseHandler)
		attorney.PUT("/cases/:id", h.UpdateCaseHandler)
		attorney.POST("/cases/:id/documents", h.UploadDocumentHandler)
		attorney.GET("/cases/:id/documents", h.GetCaseDocumentsHandler)
		attorney.GET("/documents/:id/file", h.DownloadDocumentHandler)

		attorney.GET("/portals/:uuid", h.GetPortalHandler)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
