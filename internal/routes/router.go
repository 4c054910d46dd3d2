package routes

import (
	"net/http"

	"cargo-dispatch/internal/config"
	"cargo-dispatch/internal/delivery/http/handler"
	"cargo-dispatch/internal/dispatch"
	"cargo-dispatch/internal/infrastructure/database/postgres"
	"cargo-dispatch/internal/logger"
	"cargo-dispatch/internal/middleware"
	"cargo-dispatch/internal/stock"
	"cargo-dispatch/internal/usecase/customer"
	"cargo-dispatch/internal/usecase/driver"
	"cargo-dispatch/internal/usecase/product"
	"cargo-dispatch/internal/usecase/shipment"
	"cargo-dispatch/internal/usecase/warehouse"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires repositories, services and handlers into the HTTP
// surface. The shipment service is returned so the ingestion pipeline can
// feed driver status updates through the same coordinator.
func SetupRoutes(cfg *config.Config, db *postgres.DB, publisher shipment.EventPublisher) (*gin.Engine, *shipment.Service) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	productRepository := postgres.NewProductRepository(db)
	driverRepository := postgres.NewDriverRepository(db)
	customerRepository := postgres.NewCustomerRepository(db)
	warehouseRepository := postgres.NewWarehouseRepository(db)
	shipmentRepository := postgres.NewShipmentRepository(db)

	ledger := stock.NewLedger(productRepository)
	gate := dispatch.NewGate(driverRepository)

	shipmentService := shipment.NewService(
		shipmentRepository,
		customerRepository,
		productRepository,
		driverRepository,
		ledger,
		gate,
		db,
		publisher,
	)
	productService := product.NewService(productRepository, shipmentRepository, ledger)
	customerService := customer.NewService(customerRepository)
	warehouseService := warehouse.NewService(warehouseRepository)
	driverService := driver.NewService(driverRepository, shipmentRepository)

	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	driverHandler := handler.NewDriverHandler(driverService)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			// Manager routes
			manager := protected.Group("")
			manager.Use(middleware.ManagerOnly())
			{
				shipmentHandler.RegisterManagerRoutes(manager)
				productHandler.RegisterManagerRoutes(manager)
				customerHandler.RegisterManagerRoutes(manager)
				warehouseHandler.RegisterManagerRoutes(manager)
				driverHandler.RegisterManagerRoutes(manager)
			}

			// Driver routes
			drivers := protected.Group("")
			drivers.Use(middleware.DriverOnly())
			{
				shipmentHandler.RegisterDriverRoutes(drivers)
			}
		}
	}

	logger.Info("All routes initialized")
	return router, shipmentService
}
