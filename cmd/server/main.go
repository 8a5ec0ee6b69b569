package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/fekuna/campus-uniform-service/config"
	"github.com/fekuna/campus-uniform-service/internal/auth"
	"github.com/fekuna/campus-uniform-service/internal/httpx"
	"github.com/fekuna/campus-uniform-service/internal/salesreport"
	"github.com/fekuna/campus-uniform-service/internal/schedule"
	"github.com/fekuna/campus-uniform-service/pkg/broker"
	"github.com/fekuna/campus-uniform-service/pkg/cache"
	"github.com/fekuna/campus-uniform-service/pkg/database/postgres"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	pkgmailer "github.com/fekuna/campus-uniform-service/pkg/mailer"
	"github.com/fekuna/campus-uniform-service/pkg/search"

	catRepoPkg "github.com/fekuna/campus-uniform-service/internal/catalog/repository"
	catUCPkg "github.com/fekuna/campus-uniform-service/internal/catalog/usecase"

	invH "github.com/fekuna/campus-uniform-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/campus-uniform-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/campus-uniform-service/internal/inventory/usecase"

	notifH "github.com/fekuna/campus-uniform-service/internal/notification/handler"
	notifListenerPkg "github.com/fekuna/campus-uniform-service/internal/notification/listener"
	notifMailerPkg "github.com/fekuna/campus-uniform-service/internal/notification/mailer"
	notifPubPkg "github.com/fekuna/campus-uniform-service/internal/notification/publisher"
	notifRepoPkg "github.com/fekuna/campus-uniform-service/internal/notification/repository"
	notifUCPkg "github.com/fekuna/campus-uniform-service/internal/notification/usecase"

	orderH "github.com/fekuna/campus-uniform-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/campus-uniform-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/campus-uniform-service/internal/order/usecase"

	"github.com/fekuna/campus-uniform-service/internal/production"
	prodH "github.com/fekuna/campus-uniform-service/internal/production/handler"
	prodRepoPkg "github.com/fekuna/campus-uniform-service/internal/production/repository"
	prodUCPkg "github.com/fekuna/campus-uniform-service/internal/production/usecase"

	reportIndexerPkg "github.com/fekuna/campus-uniform-service/internal/salesreport/indexer"
	reportRepoPkg "github.com/fekuna/campus-uniform-service/internal/salesreport/repository"

	schedH "github.com/fekuna/campus-uniform-service/internal/schedule/handler"
	schedRepoPkg "github.com/fekuna/campus-uniform-service/internal/schedule/repository"
	schedUCPkg "github.com/fekuna/campus-uniform-service/internal/schedule/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
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
	txManager := postgres.NewTxManager(db)

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	reportRepo := reportRepoPkg.NewPGRepository(db)
	announcementRepo := schedRepoPkg.NewAnnouncementRepository(db)
	notifRepo := notifRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
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

	// 6. Initialize Kafka
	kafkaCfg := &broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}
	kafkaProducer := broker.NewProducer(kafkaCfg)
	defer kafkaProducer.Close()
	kafkaConsumer := broker.NewConsumer(kafkaCfg)
	defer kafkaConsumer.Close()
	appLogger.Info("Kafka configured", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 7. Initialize Elasticsearch
	var reportIndexer salesreport.Indexer
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, sales reports will not be indexed", zap.Error(err))
	} else {
		indexer := reportIndexerPkg.NewElasticIndexer(esClient, cfg.Elastic.SalesIndex)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := indexer.EnsureIndex(ctx); err != nil {
			appLogger.Warn("Could not create sales index", zap.String("index", cfg.Elastic.SalesIndex), zap.Error(err))
		}
		cancel()
		reportIndexer = indexer
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 8. Initialize Mailer
	var sender notifMailerPkg.Sender
	if cfg.SendGrid.APIKey != "" {
		sender = pkgmailer.NewSendGridClient(pkgmailer.Config{
			APIKey:    cfg.SendGrid.APIKey,
			FromEmail: cfg.SendGrid.FromEmail,
			FromName:  cfg.SendGrid.FromName,
		})
	} else {
		appLogger.Warn("SENDGRID_API_KEY not set, emails will only be logged")
		sender = notifMailerPkg.NewLogSender(appLogger)
	}
	orderMailer := notifMailerPkg.NewOrderMailer(sender)

	// 9. Initialize UseCases
	scheduleCfg, err := buildScheduleConfig(cfg.Schedule)
	if err != nil {
		appLogger.Fatal("Invalid schedule configuration", zap.Error(err))
	}
	policy, err := production.ParseMissingMaterialPolicy(cfg.Production.MissingMaterialPolicy)
	if err != nil {
		appLogger.Fatal("Invalid production configuration", zap.Error(err))
	}

	notifier := notifPubPkg.NewKafkaNotifier(kafkaProducer, appLogger)
	catUC := catUCPkg.NewCatalogUseCase(catRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, txManager, appLogger)
	schedUC := schedUCPkg.NewScheduleUseCase(scheduleCfg, announcementRepo, orderRepo, appLogger)
	notifUC := notifUCPkg.NewNotificationUseCase(notifRepo, appLogger)

	orderUC := orderUCPkg.NewOrderUseCase(orderUCPkg.Params{
		Repo:      orderRepo,
		Ledger:    invUC,
		Reports:   reportRepo,
		Indexer:   reportIndexer,
		Scheduler: schedUC,
		Locker:    redisClient,
		Tx:        txManager,
		Notifier:  notifier,
		Mailer:    orderMailer,
		LockTTL:   time.Duration(cfg.Schedule.LockTTLSeconds) * time.Second,
		Logger:    appLogger,
	})
	prodUC := prodUCPkg.NewProductionUseCase(prodUCPkg.Params{
		Repo:     prodRepo,
		Catalog:  catUC,
		Ledger:   invUC,
		Tx:       txManager,
		Notifier: notifier,
		Policy:   policy,
		Logger:   appLogger,
	})

	// 10. Start Notification Listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifListener := notifListenerPkg.NewNotificationListener(kafkaConsumer, notifUC, appLogger)
	go notifListener.Start(ctx)

	// 11. Initialize HTTP Handlers
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpx.RequestID())
	router.Use(httpx.Logger(appLogger))
	router.Use(auth.Middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	orderH.NewOrderHandler(orderUC, appLogger).Register(api)
	schedH.NewScheduleHandler(schedUC, appLogger).Register(api)
	prodH.NewProductionHandler(prodUC, appLogger).Register(api)
	invH.NewInventoryHandler(invUC, appLogger).Register(api)
	notifH.NewNotificationHandler(notifUC, appLogger).Register(api)

	srv := &http.Server{
		Addr:              withColon(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 12. Start gRPC Health Server
	lis, err := net.Listen("tcp", withColon(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func buildScheduleConfig(c config.ScheduleConfig) (schedule.Config, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return schedule.Config{}, err
	}

	sc := schedule.DefaultConfig()
	sc.Location = loc
	if c.DailyCap > 0 {
		sc.DailyCapacity = c.DailyCap
	}
	if c.HorizonDays > 0 {
		sc.HorizonDays = c.HorizonDays
	}
	return sc, nil
}

func withColon(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
