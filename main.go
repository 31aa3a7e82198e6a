// @title Asadel Console API
// @version 1.0
// @description Camera surveillance admin console: areas, cameras, users, live MJPEG feeds and fire/smoke detection reports
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/config"
	_ "github.com/Asadel-Surveillance/asadel-console/docs"
	"github.com/Asadel-Surveillance/asadel-console/metrics"
	"github.com/Asadel-Surveillance/asadel-console/middleware"
	"github.com/Asadel-Surveillance/asadel-console/routes/console_routes"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tunables from config.yaml / ASADEL_* env
	config.App = config.LoadAppConfig(".")

	// Connect to DB and bring the schema up to date
	config.InitDB()
	defer config.CloseDB()
	if err := config.RunMigrations(config.DatabaseURL()); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Redis connection (rate limits, token deny-list)
	config.ConnectRedis()
	defer config.CloseRedis()

	// ✅ Initialize JWT Service for console auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret, config.App.JWTExpiry); err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	log.Println("✅ JWT Service initialized")

	// Optional integrations
	services.InitMediaService()
	services.InitAlertMailer()
	config.InitGoogleOAuth(ctx)

	if config.App.MQTTBroker != "" {
		ingestor := services.NewDetectionIngestor(config.App, services.GetDetectionService())
		if err := ingestor.Start(ctx); err != nil {
			log.Printf("❌ Detection ingestor disabled: %v", err)
		} else {
			defer ingestor.Stop()
			log.Printf("✅ Detection ingestor connected to %s", config.App.MQTTBroker)
		}
	} else {
		log.Println("⚠️  detections.mqtt_broker not set, detections arrive over HTTP only")
	}

	go services.GetSessionService().RunSessionJanitor(ctx, time.Hour)

	corsCfg := cors.Config{
		AllowOrigins:     config.App.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.WorkerKeyHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"},
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))
	router.Use(middleware.MetricsMiddleware())

	api := router.Group("/api/v1")
	console_routes.SetupConsoleRoutes(api)
	log.Println("✅ Console routes registered")

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server is running on http://localhost:%s", config.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Forced shutdown: %v", err)
	}
}
