package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dinerozz/tabsnoop-backend/config"
	"github.com/dinerozz/tabsnoop-backend/docs"
	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	summaryHandler "github.com/dinerozz/tabsnoop-backend/internal/handler/summary"
	handler "github.com/dinerozz/tabsnoop-backend/internal/handler/tab_event"
	"github.com/dinerozz/tabsnoop-backend/internal/host"
	"github.com/dinerozz/tabsnoop-backend/internal/repository"
	summaryService "github.com/dinerozz/tabsnoop-backend/internal/service/summary"
	service "github.com/dinerozz/tabsnoop-backend/internal/service/tab_event"
	trackerService "github.com/dinerozz/tabsnoop-backend/internal/service/tracker"
	"github.com/dinerozz/tabsnoop-backend/middleware"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterHandler struct {
	tabEventHandler *handler.TabEventHandler
	summaryHandler  *summaryHandler.SummaryHandler
	tracker         trackerService.TrackerService
}

func RunServer(config *config.Config) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	loc, err := config.Tracker.Location()
	if err != nil {
		log.Fatal("❌ Invalid time zone:", err)
	}

	ctx := context.Background()

	repo, closeRepo, err := repository.Open(ctx, config)
	if err != nil {
		log.Fatal("❌ Failed to open store:", err)
	}
	defer closeRepo()

	log.Printf("✅ Using %s store", config.Store)

	routerHandler := newRouterHandler(repo, config.Tracker, loc, slog.Default())

	if err := routerHandler.tracker.Start(ctx); err != nil {
		slog.Error("tracker startup failed", slog.String("error", err.Error()))
	}

	configureSwagger(config.Server.BaseURL)
	r := setupRouter(routerHandler, slog.Default())

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	gracefulShutdown(srv)
}

func newRouterHandler(repo repository.DomainRecordRepository, cfg config.TrackerConfig, loc *time.Location, logger *slog.Logger) *RouterHandler {
	registry := host.NewRegistry()

	tracker := trackerService.NewTrackerService(registry, repo,
		trackerService.WithLogger(logger.With(slog.String("component", "tracker"))),
		trackerService.WithInternalSchemes(cfg.InternalSchemes),
	)

	tabEventSrv := service.NewTabEventService(registry, tracker, entity.TrackerSettings{
		IdleDetectionSeconds: cfg.IdleDetectionSeconds,
		InternalSchemes:      cfg.InternalSchemes,
		Timezone:             loc.String(),
	})
	summarySrv := summaryService.NewSummaryService(repo, loc)

	return &RouterHandler{
		tabEventHandler: handler.NewTabEventHandler(tabEventSrv),
		summaryHandler:  summaryHandler.NewSummaryHandler(summarySrv, loc),
		tracker:         tracker,
	}
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server gracefully stopped")
}

// configureSwagger points the swagger UI at the externally visible base url.
func configureSwagger(baseURL string) {
	docs.SwaggerInfo.Host = "127.0.0.1:8080"
	docs.SwaggerInfo.Schemes = []string{"http"}
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		docs.SwaggerInfo.Host = u.Host
		docs.SwaggerInfo.Schemes = []string{u.Scheme}
	}

	docs.SwaggerInfo.Title = "tabsnoop API"
	docs.SwaggerInfo.Description = "Active tab time tracking"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"
}

func setupRouter(routerHandler *RouterHandler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "tabsnoop",
		})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/events", routerHandler.tabEventHandler.CreateEvent)
		api.POST("/events/batch", routerHandler.tabEventHandler.BatchCreateEvents)

		api.GET("/tracker/state", routerHandler.tabEventHandler.GetState)
		api.GET("/tracker/config", routerHandler.tabEventHandler.GetSettings)

		api.GET("/summary", routerHandler.summaryHandler.GetSummary)
		api.GET("/records/:domain", routerHandler.summaryHandler.GetDomainRecord)
		api.DELETE("/records", routerHandler.summaryHandler.ClearAll)
	}

	return r
}
