package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/LavaJover/shvark-fulfillment-service/internal/config"
	"github.com/LavaJover/shvark-fulfillment-service/internal/delivery/http/handlers"
	publisher "github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/referral"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/storage"
	"github.com/LavaJover/shvark-fulfillment-service/internal/usecase/assignment"
	"github.com/LavaJover/shvark-fulfillment-service/internal/usecase/fraud"
	usecase "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/order"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupLogger(cfg *config.FulfillmentConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogConfig.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	logger := setupLogger(cfg)
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.FulfillmentDB.MigrationPath != "" {
		if err := migrate.RunMigrations(db, cfg.FulfillmentDB.MigrationPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	kafkaPublisher := publisher.NewKafkaPublisher(cfg.KafkaService.Brokers, cfg.KafkaService.Topic)
	defer kafkaPublisher.Close()

	// Init repositories
	orderRepo := repository.NewDefaultOrderRepository(db)
	workerRepo := repository.NewDefaultWorkerRepository(db)
	activityRepo := repository.NewDefaultActivityRepository(db)
	attemptRepo := repository.NewDefaultDeliveryAttemptRepository(db)
	settlementRepo := repository.NewDefaultSettlementRepository(db)
	fraudRepo := repository.NewDefaultFraudRepository(db)

	// Init fraud gate
	policy := fraud.Policy{
		Enforce:              cfg.FraudPolicy.Enforce,
		HighAmountThreshold:  cfg.FraudPolicy.HighAmountThreshold,
		CODCeiling:           cfg.FraudPolicy.CODCeiling,
		BlockScore:           cfg.FraudPolicy.BlockScore,
		MaxOrdersPerWindow:   cfg.FraudPolicy.MaxOrdersPerWindow,
		OrderWindow:          cfg.FraudPolicy.OrderWindow,
		MaxAttemptsPerMinute: cfg.FraudPolicy.MaxAttemptsPerMinute,
		VelocityPerMinute:    cfg.FraudPolicy.VelocityPerMinute,
		DuplicateWindow:      cfg.FraudPolicy.DuplicateWindow,
		MaxIPUsers:           cfg.FraudPolicy.MaxIPUsers,
	}
	gate := fraud.NewGate(fraudRepo, orderRepo, policy, logger)

	// Init assignment resolver
	resolver := assignment.NewResolver(workerRepo, orderRepo, logger)

	// Init referral client and notifier
	referralClient := referral.NewHTTPReferralClient(cfg.ReferralService.Address)
	httpNotifier := notifier.NewHTTPNotifier(cfg.Notifier.CallbackURL)

	// Init proof storage
	proofStore, err := storage.NewLocalProofStore(cfg.ProofStorage.BaseDir)
	if err != nil {
		log.Fatalf("failed to init proof storage: %v", err)
	}

	fulfillmentMetrics := metrics.NewFulfillmentMetrics()

	uc := usecase.NewDefaultOrderUsecase(
		orderRepo,
		workerRepo,
		activityRepo,
		attemptRepo,
		settlementRepo,
		gate,
		resolver,
		kafkaPublisher,
		referralClient,
		httpNotifier,
		fulfillmentMetrics,
		logger,
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	orderHandler := handlers.NewOrderHandler(uc, proofStore, logger)
	orderHandler.RegisterRoutes(router)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
