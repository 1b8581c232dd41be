package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/trimeca/inventory/internal/config"
	"github.com/trimeca/inventory/internal/handlers"
	"github.com/trimeca/inventory/internal/middleware"
	"github.com/trimeca/inventory/internal/models"
	"github.com/trimeca/inventory/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database (Postgres with SQLite fallback)
	db, dbMode, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Pick the attachment sink once at startup: remote object storage when
	// configured and reachable, inline database storage otherwise.
	sink := selectSink(cfg)
	log.Printf("Attachment storage mode: %s", sink.Name())

	// Initialize services
	attachmentService := services.NewAttachmentService(db, sink)
	assetService := services.NewAssetService(db, attachmentService)
	locationService := services.NewLocationService(db)
	transferService := services.NewTransferService(db)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))
	router.Use(middleware.UploadRateLimit(redisClient, cfg))

	// Initialize handlers
	assetHandler := handlers.NewAssetHandler(assetService)
	locationHandler := handlers.NewLocationHandler(locationService)
	transferHandler := handlers.NewTransferHandler(transferService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"database":    string(dbMode),
			"attachments": sink.Name(),
		})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Asset registry
		api.POST("/assets", assetHandler.RegisterAsset)
		api.GET("/assets", assetHandler.ListAssets)
		api.GET("/assets/:id", assetHandler.GetAsset)
		api.PUT("/assets/:id", assetHandler.UpdateAsset)
		api.DELETE("/assets/:id", assetHandler.DeleteAsset)

		// Transfers
		api.POST("/assets/:id/transfer", transferHandler.TransferAsset)
		api.GET("/transfers", transferHandler.GetHistory)
		api.GET("/deleted-assets", transferHandler.GetDeletions)

		// Location directory
		api.GET("/locations", locationHandler.ListLocations)
		api.POST("/locations", locationHandler.CreateLocation)
		api.PUT("/locations/rename", locationHandler.RenameLocation)
		api.DELETE("/locations", locationHandler.DeleteLocation)

		// Attachments
		api.POST("/assets/:id/attachments", attachmentHandler.UploadAttachments)
		api.GET("/assets/:id/attachments", attachmentHandler.ListAttachments)
		api.DELETE("/attachments/:id", attachmentHandler.DeleteAttachment)
		api.GET("/attachments/:id/file", attachmentHandler.ServeAttachment)
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  120 * time.Second, // uploads can be large
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// selectSink probes the object-storage bucket and falls back to inline
// database storage when it is absent or unreachable.
func selectSink(cfg *config.Config) services.AttachmentSink {
	if !cfg.S3Configured() {
		return services.NewInlineSink()
	}

	s3Service, err := services.NewS3Service(cfg)
	if err != nil {
		log.Printf("WARN: object storage client init failed (%v), storing attachments inline", err)
		return services.NewInlineSink()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s3Service.Ping(ctx); err != nil {
		log.Printf("WARN: object storage unreachable (%v), storing attachments inline", err)
		return services.NewInlineSink()
	}

	return services.NewRemoteSink(s3Service)
}
