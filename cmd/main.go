package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/franciscosanchezn/pizzeria-orders-api/docs" // Import generated docs
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/config"
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/controllers"
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/database"
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/middleware"
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/services"
	"github.com/franciscosanchezn/pizzeria-orders-api/internal/storage"
)

var (
	configuration     *config.Config
	catalogController controllers.CatalogController
	orderController   controllers.OrderController
)

// @title Pizzeria Orders API
// @version 1.0
// @description Order lifecycle and pricing service for a pizzeria
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection, migrate and seed
	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver:   configuration.DBDriver,
		Host:     configuration.DBHost,
		Port:     configuration.DBPort,
		User:     configuration.DBUser,
		Password: configuration.DBPassword,
		Name:     configuration.DBName,
		SSLMode:  configuration.DBSSLMode,
		Path:     configuration.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.SeedIfEmpty(db))

	// Catalog cache is optional: without REDIS_ADDR every read hits the database
	var cache *storage.CatalogCache
	if configuration.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: configuration.RedisAddr})
		cache = storage.NewCatalogCache(client, time.Duration(configuration.CacheTTLSeconds)*time.Second)
		log.WithField("redis_addr", configuration.RedisAddr).Info("Catalog cache enabled")
	}

	// Initialize services and controllers
	catalogService := services.NewCatalogService(db, cache)
	settingsService := services.NewSettingsService(db)
	orderService := services.NewOrderService(storage.NewOrderStore(db), catalogService, settingsService)

	catalogController = controllers.NewCatalogController(catalogService, settingsService)
	orderController = controllers.NewOrderController(orderService)

	// Initialize Gin router
	router := setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()
	setupRoutes(router)
	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		// Public catalog, no authentication
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/pizzas", catalogController.GetPizzas)
			publicApi.GET("/pizzas/:id", catalogController.GetPizzaByID)
			publicApi.GET("/extras", catalogController.GetExtras)
			publicApi.GET("/extras/:id", catalogController.GetExtraByID)
			publicApi.GET("/settings", catalogController.GetSettings)
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth())
		{
			orders := protectedApi.Group("/orders")
			{
				orders.POST("", orderController.CreateOrder)
				orders.GET("/:id", orderController.GetOrder)

				// Lifecycle transitions are reserved for the pizzeria staff
				staff := orders.Group("")
				staff.Use(middleware.RequireRole("pizzeria", "admin"))
				{
					staff.POST("/:id/confirm", orderController.ConfirmOrder)
					staff.POST("/:id/preparation", orderController.StartPreparation)
					staff.POST("/:id/ready", orderController.MarkReady)
					staff.POST("/:id/pickup", orderController.PickUpOrder)
				}
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizzeria-orders-api",
	})
}
