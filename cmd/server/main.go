package main

import (
	"context"
	"log"
	"os"

	"reportdiff-backend/handlers"
	"reportdiff-backend/repository"
	"reportdiff-backend/service"
	"reportdiff-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	// Run history is optional: the comparison engine is stateless and the
	// service stays usable without a database
	var runRepo *repository.ReportRunRepository
	if os.Getenv("DATABASE_URL") != "" {
		db, err := initPostgres()
		if err != nil {
			log.Fatal("Failed to initialize Postgres:", err)
		}
		defer db.Close()
		runRepo = repository.NewReportRunRepository(db)
	} else {
		log.Println("Warning: DATABASE_URL not set, run history disabled")
	}

	// Initialize storage
	fileStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	// Initialize services
	compareService := service.NewCompareService(
		service.CompareWithRunRepository(runRepo),
		service.CompareWithStorage(fileStorage),
	)

	var digestService *service.DigestService
	if os.Getenv("GEMINI_API_KEY") != "" && runRepo != nil {
		geminiClient, err := initGemini()
		if err != nil {
			log.Fatal("Failed to initialize Gemini:", err)
		}
		digestService = service.NewDigestService(
			service.DigestWithRunRepository(runRepo),
			service.DigestWithGeminiClient(geminiClient),
		)
	} else {
		log.Println("Warning: digest generation disabled (needs GEMINI_API_KEY and a database)")
	}

	// Initialize handlers
	compareHandler := handlers.NewCompareHandler(compareService)
	reportHandler := handlers.NewReportHandler(runRepo, fileStorage, digestService)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	if keyHash := os.Getenv("API_KEY_HASH"); keyHash != "" {
		api.Use(handlers.APIKeyAuth(keyHash))
	}
	{
		// Comparison endpoint
		api.POST("/compare", compareHandler.CompareReports)

		// Run history endpoints
		api.GET("/reports", reportHandler.ListReports)
		api.GET("/reports/:id", reportHandler.GetReport)
		api.GET("/reports/:id/document", reportHandler.DownloadReportDocument)
		api.POST("/reports/:id/digest", reportHandler.GenerateDigest)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initPostgres() (*pgxpool.Pool, error) {
	connString := os.Getenv("DATABASE_URL")

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Postgres connection established")
	return pool, nil
}

func initGemini() (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}
