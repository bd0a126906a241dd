package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"findabode-backend/internal/cache"
	"findabode-backend/internal/config"
	"findabode-backend/internal/database"
	"findabode-backend/internal/featured"
	"findabode-backend/internal/handlers"
	"findabode-backend/internal/middleware"
	"findabode-backend/internal/notify"
	"findabode-backend/internal/ratelimit"
	"findabode-backend/internal/scheduler"
	"findabode-backend/internal/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/findabode.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize database based on configuration
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "mysql")
	}

	var db *database.GormDB
	if dbType == "postgres" {
		log.Println("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres
		db, err = database.NewPostgres(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portString(pgCfg.Port), "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "findabode_user"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "findabode_pass"),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "findabode_db"),
			pgCfg.SSLMode,
		)
	} else {
		log.Println("Using MySQL")
		mysqlCfg := appConfig.Database.MySQL
		db, err = database.NewMySQL(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portString(mysqlCfg.Port), "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "findabode_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "findabode_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "findabode_db"),
		)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Default admin account, created once from env credentials
	adminEmail := getEnv("ADMIN_EMAIL", "")
	created, err := db.EnsureAdminUser(adminEmail, getEnv("ADMIN_PASSWORD", ""), getEnv("ADMIN_NAME", "Admin"))
	if err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}
	if created {
		log.Printf("Created default admin account %s", adminEmail)
	}

	// Featured engine
	featuredService := featured.NewService(db.DB())

	// Redis cache for the featured list
	var featuredCache *cache.Cache
	if appConfig.Cache.Enabled {
		featuredCache = cache.New(
			getEnvOrConfig(appConfig.Cache.Addr, "REDIS_ADDR", "localhost:6379"),
			getEnvOrConfig(appConfig.Cache.Password, "REDIS_PASSWORD", ""),
			appConfig.Cache.DB,
			appConfig.Cache.CacheTTL(),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := featuredCache.Ping(ctx); err != nil {
			log.Printf("Warning: Redis unavailable, featured list caching disabled: %v", err)
			featuredCache = nil
		}
		cancel()
	}

	// Meilisearch browse index
	var searchClient *search.SearchClient
	if appConfig.Search.Meilisearch.Enabled {
		searchClient = search.NewSearchClient(
			getEnvOrConfig(appConfig.Search.Meilisearch.Host, "MEILISEARCH_HOST", "http://localhost:7700"),
			getEnvOrConfig(appConfig.Search.Meilisearch.APIKey, "MEILISEARCH_KEY", ""),
		)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		}
		if properties, err := db.GetEligibleProperties(); err != nil {
			log.Printf("Warning: Failed to load properties for index seeding: %v", err)
		} else if err := searchClient.IndexProperties(properties); err != nil {
			log.Printf("Warning: Failed to seed search index: %v", err)
		} else {
			log.Printf("Seeded search index with %d properties", len(properties))
		}
	}

	// Outgoing mail
	var mailer *notify.Mailer
	if appConfig.Mail.Enabled {
		mailer = notify.NewMailer(
			appConfig.Mail.Host,
			appConfig.Mail.Port,
			appConfig.Mail.Username,
			appConfig.Mail.Password,
			appConfig.Mail.Sender,
		)
		log.Println("Mailer initialized")
	}

	// Inquiry rate limiter
	rateLimiter := ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.RequestsPerDay,
		appConfig.RateLimit.Enabled,
	)

	// Auth
	jwtSecret := getEnvOrConfig(appConfig.Auth.JWTSecret, "JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	auth := middleware.NewAuth(jwtSecret, appConfig.Auth.TokenExpiry())

	// Daily featured reconciliation
	appScheduler := scheduler.NewScheduler(featuredService, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	// Handlers
	propertyHandler := handlers.NewPropertyHandler(db, featuredService, searchClient, featuredCache, mailer, rateLimiter)
	wishlistHandler := handlers.NewWishlistHandler(db, featuredService)
	adminHandler := handlers.NewAdminHandler(db, featuredService, appScheduler, searchClient, featuredCache, mailer)
	userHandler := handlers.NewUserHandler(db, auth, mailer)

	// Setup Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	r.POST("/api/users/register", userHandler.Register)
	r.POST("/api/users/login", userHandler.Login)
	r.GET("/api/properties", propertyHandler.ListProperties)
	r.GET("/api/properties/featured", propertyHandler.GetFeatured)
	r.GET("/api/properties/:id", propertyHandler.GetProperty)

	// Authenticated routes
	authed := r.Group("/api", auth.Authenticate())
	{
		authed.GET("/users/me", userHandler.Me)
		authed.GET("/users/properties", propertyHandler.GetUserProperties)

		authed.POST("/properties", propertyHandler.CreateProperty)
		authed.PUT("/properties/:id", propertyHandler.UpdateProperty)
		authed.DELETE("/properties/:id", propertyHandler.DeleteProperty)
		authed.POST("/properties/:id/inquiries", propertyHandler.CreateInquiry)

		authed.GET("/wishlist", wishlistHandler.GetWishlist)
		authed.POST("/wishlist", wishlistHandler.AddToWishlist)
		authed.DELETE("/wishlist/:propertyId", wishlistHandler.RemoveFromWishlist)
		authed.GET("/wishlist/:propertyId/check", wishlistHandler.CheckWishlist)
	}

	// Admin routes
	admin := r.Group("/api/admin", auth.Authenticate(), auth.RequireAdmin())
	{
		admin.PATCH("/properties/:id/approve", adminHandler.ApproveProperty)
		admin.PATCH("/properties/:id/reject", adminHandler.RejectProperty)
		admin.PATCH("/properties/:id/toggle-featured", adminHandler.ToggleFeatured)
		admin.PATCH("/properties/:id/mark-sold", adminHandler.MarkSold)
		admin.POST("/featured/reconcile", adminHandler.RunReconciliation)
		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/users/pending", adminHandler.GetPendingProviders)
		admin.PATCH("/users/:id/approve", adminHandler.ApproveUser)
		admin.PATCH("/users/:id/reject", adminHandler.RejectUser)
	}

	port := getEnv("PORT", fmt.Sprintf("%d", appConfig.Server.Port))
	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv returns the environment variable or a default
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvOrConfig prefers the config value, then the environment, then a default
func getEnvOrConfig(configValue, envKey, fallback string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, fallback)
}

// portString renders a port for DSN building, treating 0 as unset
func portString(port int) string {
	if port > 0 {
		return fmt.Sprintf("%d", port)
	}
	return ""
}
