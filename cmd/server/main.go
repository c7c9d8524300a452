package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-mall-service/config"
	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/middleware"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/search"

	analyticsH "github.com/fekuna/omnipos-mall-service/internal/analytics/handler"
	analyticsListenerPkg "github.com/fekuna/omnipos-mall-service/internal/analytics/listener"
	analyticsRepoPkg "github.com/fekuna/omnipos-mall-service/internal/analytics/repository"
	analyticsUCPkg "github.com/fekuna/omnipos-mall-service/internal/analytics/usecase"

	custH "github.com/fekuna/omnipos-mall-service/internal/customization/handler"
	custRepoPkg "github.com/fekuna/omnipos-mall-service/internal/customization/repository"
	custUCPkg "github.com/fekuna/omnipos-mall-service/internal/customization/usecase"

	prodH "github.com/fekuna/omnipos-mall-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-mall-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-mall-service/internal/product/usecase"

	selH "github.com/fekuna/omnipos-mall-service/internal/selection/handler"
	selStorePkg "github.com/fekuna/omnipos-mall-service/internal/selection/store"
	selUCPkg "github.com/fekuna/omnipos-mall-service/internal/selection/usecase"

	storeH "github.com/fekuna/omnipos-mall-service/internal/store/handler"
	storeRepoPkg "github.com/fekuna/omnipos-mall-service/internal/store/repository"
	storeUCPkg "github.com/fekuna/omnipos-mall-service/internal/store/usecase"

	variantH "github.com/fekuna/omnipos-mall-service/internal/variant/handler"
	variantUCPkg "github.com/fekuna/omnipos-mall-service/internal/variant/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 1.5 i18n, embedded English plus optional files from LOCALES_DIR
	if err := i18n.Init(); err != nil {
		log.Fatalf("Failed to load embedded locales: %v", err)
	}
	if dir := os.Getenv("LOCALES_DIR"); dir != "" {
		if err := i18n.Load(dir + "/active.id.json"); err != nil {
			log.Printf("Failed to load id locales: %v", err)
		}
	}

	// 2. Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Kafka
	bapConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.BapEventsTopic,
		GroupID: cfg.Kafka.BapEventsGroupID,
	})
	defer bapConsumer.Close()
	appLogger.Info("Kafka consumer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.BapEventsTopic))

	noticeProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationsTopic,
	}, func(err error) {
		appLogger.Warn("Notification delivery failed", zap.Error(err))
	})
	defer noticeProducer.Close()

	// 6. Elasticsearch, optional
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, product search falls back to the database", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	notifier := notify.Multi{
		notify.NewLogNotifier(appLogger),
		notify.NewKafkaNotifier(noticeProducer, appLogger),
	}

	// 7. Repositories
	prodRepo := prodRepoPkg.NewPGRepository(db)
	custRepo := custRepoPkg.NewPGRepository(db)
	storeRepo := storeRepoPkg.NewPGRepository(db)
	analyticsRepo := analyticsRepoPkg.NewPGRepository(db)
	selStore := selStorePkg.NewRedisStore(redisClient, cfg.Selection.SessionTTL)

	// 8. Use cases
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, appLogger)
	variantUC := variantUCPkg.NewVariantUseCase(prodUC, appLogger)
	custUC := custUCPkg.NewCustomizationUseCase(custRepo, prodUC, appLogger)
	selUC := selUCPkg.NewSelectionUseCase(selStore, prodUC, appLogger)
	storeUC := storeUCPkg.NewStoreUseCase(storeRepo, appLogger)
	analyticsUC := analyticsUCPkg.NewAnalyticsUseCase(analyticsRepo, appLogger)

	// 9. Listener
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bapListener := analyticsListenerPkg.NewBapEventListener(bapConsumer, analyticsUC, appLogger)
	go bapListener.Start(ctx)

	// 10. HTTP
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(appLogger))
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", auth.RequireMerchant())
	prodH.NewProductHandler(prodUC, notifier, appLogger).Register(api)
	variantH.NewVariantHandler(variantUC, notifier, appLogger).Register(api)
	custH.NewCustomizationHandler(custUC, notifier, appLogger).Register(api)
	selH.NewSelectionHandler(selUC, notifier, appLogger).Register(api)
	storeH.NewStoreHandler(storeUC, notifier, appLogger).Register(api)

	// analytics is mall-wide unless a merchant header narrows it
	mall := router.Group("/api", auth.OptionalMerchant())
	analyticsH.NewAnalyticsHandler(analyticsUC, notifier, appLogger).Register(mall)

	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 11. gRPC: health and reflection for the service mesh
	grpcPort := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(auth.ContextInterceptor()),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("HTTP shutdown", zap.Error(err))
		}
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server exited with error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", auth.MerchantHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.IsDevelopment() || len(cfg.Server.AllowedOrigins) == 0 {
		c.AllowOriginFunc = func(string) bool { return true }
	} else {
		c.AllowOrigins = cfg.Server.AllowedOrigins
	}
	return c
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
