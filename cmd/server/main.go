package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kktculasim/ulasim-backend/internal/config"
	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/handlers"
	"github.com/kktculasim/ulasim-backend/internal/middleware"
	"github.com/kktculasim/ulasim-backend/internal/services"
	"github.com/kktculasim/ulasim-backend/internal/utils"
	"github.com/kktculasim/ulasim-backend/pkg/osrm"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting KKTC Ulaşım backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.WithField("driver", cfg.Database.Driver).Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	location := cfg.Server.Location()
	logger.WithField("timezone", location.String()).Info("Departure clock configured")

	// Repositories
	routeRepo := database.NewRouteRepository(db)
	scheduleRepo := database.NewScheduleRepository(db)
	smartRouteRepo := database.NewSmartRouteRepository(db)
	reportRepo := database.NewReportRepository(db)
	stopRepo := database.NewStopRepository(db)
	statsRepo := database.NewStatsRepository(db)

	// Services
	logger.Info("Initializing services...")
	locationService := services.NewLocationService(routeRepo, logger)
	scheduleService := services.NewScheduleService(routeRepo, scheduleRepo, location, cfg.Search.ScheduleFetchConcurrency, logger)
	smartRouteService := services.NewSmartRouteService(smartRouteRepo, location, logger)
	reportService := services.NewReportService(reportRepo, logger)
	stopService := services.NewStopService(stopRepo, logger)
	adminService := services.NewAdminService(statsRepo, scheduleRepo, routeRepo, reportService, logger)
	adminAuthService := services.NewAdminAuthService(cfg.Admin, logger)
	rateLimitService := services.NewRateLimitService(cfg.RateLimit)

	routingClient := osrm.New(cfg.Routing.BaseURL, cfg.Routing.Profile, cfg.Routing.Timeout)
	mapService := services.NewMapService(stopRepo, routingClient, logger)
	logger.Info("Services initialized")

	h := handlers.Handlers{
		Search:    handlers.NewSearchHandler(locationService, scheduleService, smartRouteService, logger),
		Report:    handlers.NewReportHandler(reportService, rateLimitService, logger),
		Map:       handlers.NewMapHandler(mapService, logger),
		AdminAuth: handlers.NewAdminAuthHandler(adminAuthService, rateLimitService, cfg.Server.IsProduction(), logger),
		Admin:     handlers.NewAdminHandler(adminService, reportService, stopService, logger),
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
	}
	logger.WithField("trusted_proxies", cfg.Server.TrustedProxies).Info("Client IP resolution configured")
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// wildcard origins cannot be combined with credentials
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheckHandler(db))

	handlers.RegisterRoutes(router, h, adminAuthService, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		device := utils.ParseUserAgent(c.Request.UserAgent())
		fields := logrus.Fields{
			"status":      c.Writer.Status(),
			"method":      c.Request.Method,
			"path":        path,
			"query":       query,
			"ip":          utils.GetRealIP(c),
			"latency_ms":  time.Since(start).Milliseconds(),
			"device_type": device.DeviceType,
			"platform":    device.Platform,
			"browser":     device.Browser,
		}
		if device.IsBot {
			fields["bot"] = true
		}
		if _, ok := c.Get(middleware.AdminAuthenticatedKey); ok {
			fields["admin"] = true
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		if status >= 500 {
			entry.Error("Request completed with server error")
		} else if status >= 400 {
			entry.Warn("Request completed with client error")
		} else {
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
