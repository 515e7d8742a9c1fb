package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"property-manager/internal/auth"
	"property-manager/internal/cleanup"
	"property-manager/internal/config"
	"property-manager/internal/database"
	"property-manager/internal/handlers"
	"property-manager/internal/ratelimit"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/app_config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize the store based on configuration
	store, err := newStore(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	// Session gate
	adminPassword := getEnvOrConfig(appConfig.Auth.AdminPassword, "ADMIN_PASSWORD", "admin1234")
	authenticator := auth.NewSessionAuthenticator(adminPassword, appConfig.Auth.SessionTTL())
	defer authenticator.Stop()

	// Daily retention job for the delete log audit trail
	retention := cleanup.NewService(store, cleanup.DefaultRetentionDays)
	retention.Start()
	defer retention.Stop()

	loginLimiter := ratelimit.NewLimiter(10, 100)

	propertyHandler := handlers.NewPropertyHandler(store)
	authHandler := handlers.NewAuthHandler(authenticator, appConfig.Auth)
	dashboardHandler := handlers.NewDashboardHandler(store)
	uploadHandler := handlers.NewUploadHandler(appConfig.Upload)

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	// Routes
	r.GET("/health", healthCheck)

	r.POST("/api/login", handlers.ThrottleLogin(loginLimiter), authHandler.Login)
	r.POST("/api/logout", authHandler.Logout)
	r.GET("/api/me", authHandler.Me)

	r.GET("/api/properties", propertyHandler.List)
	r.GET("/api/properties/:id", propertyHandler.Get)
	r.GET("/api/dashboard/summary", dashboardHandler.Summary)

	// Mutating routes require a live admin session
	protected := r.Group("/api", handlers.RequireSession(authenticator, appConfig.Auth))
	{
		protected.POST("/properties", propertyHandler.Create)
		protected.PATCH("/properties/:id", propertyHandler.Update)
		protected.DELETE("/properties/:id", propertyHandler.Delete)
		protected.POST("/upload", uploadHandler.UploadImage)
		protected.GET("/admin/delete-logs", dashboardHandler.DeleteLogs)
	}

	// Serve uploaded images
	r.Static(appConfig.Upload.PublicPath, appConfig.Upload.Dir)

	port := getEnvOrConfig(appConfig.Server.Port, "PORT", "8084")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newStore selects the store backend from configuration. MySQL is the
// production default; "memory" keeps everything in-process.
func newStore(appConfig *config.Config) (database.Store, error) {
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "mysql")
	}

	switch dbType {
	case "memory":
		log.Println("Using in-memory store (data is not persisted)")
		return database.NewMemoryStore(), nil

	case "postgres":
		log.Println("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres

		portStr := ""
		if pgCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", pgCfg.Port)
		}

		store, err := database.NewPostgresStore(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portStr, "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "property_user"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "property_pass"),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "property_db"),
		)
		if err != nil {
			return nil, err
		}
		if err := store.InitSchema(); err != nil {
			return nil, err
		}
		return store, nil

	default:
		log.Println("Using MySQL with GORM")
		mysqlCfg := appConfig.Database.MySQL

		portStr := ""
		if mysqlCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", mysqlCfg.Port)
		}

		store, err := database.NewGormStore(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "mysql"),
			getEnvOrConfig(portStr, "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "property_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "property_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "property_db"),
		)
		if err != nil {
			return nil, err
		}
		if err := store.InitSchema(); err != nil {
			return nil, err
		}
		return store, nil
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
