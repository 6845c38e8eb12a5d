package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	appconfig "github.com/adamspay/pending-transactions/pkg/config"
	"github.com/adamspay/pending-transactions/pkg/countdown"
	"github.com/adamspay/pending-transactions/pkg/events"
	"github.com/adamspay/pending-transactions/pkg/handlers"
	"github.com/adamspay/pending-transactions/pkg/handlers/admin"
	"github.com/adamspay/pending-transactions/pkg/handlers/auth"
	countdownhandler "github.com/adamspay/pending-transactions/pkg/handlers/countdown"
	"github.com/adamspay/pending-transactions/pkg/handlers/transactions"
	"github.com/adamspay/pending-transactions/pkg/ratelimit"
	"github.com/adamspay/pending-transactions/pkg/reconciler"
	"github.com/adamspay/pending-transactions/pkg/session"
	dydbstore "github.com/adamspay/pending-transactions/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	awsCfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.TransactionsTableName, cfg.ExpiryWindow)

	var publisher events.Publisher = events.NoOpPublisher{}
	if cfg.EventsQueueURL != "" {
		publisher = events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.EventsQueueURL)
	} else {
		logger.Warn("SQS_EVENTS_QUEUE_URL not set, events will be discarded")
	}

	broadcaster := session.NewBroadcaster()
	tokens := session.NewTokenIssuer(cfg.JWTSigningSecret, cfg.SessionTTL)

	rec := reconciler.New(store, publisher, logger, cfg.ReconcileInterval)
	driver := countdown.New(rec, rec.Kick, logger)
	limiter := ratelimit.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background loops all die with ctx, so a shutdown never leaks timers.
	go rec.Run(ctx, broadcaster.Subscribe())
	go driver.Run(ctx)
	go limiter.Run(ctx)

	router := handlers.NewRouter(
		logger,
		limiter,
		tokens,
		transactions.NewTransactionsHandler(store, rec.Kick, logger),
		auth.NewAuthHandler(publisher, tokens, broadcaster, logger),
		admin.NewAdminHandler(store, logger),
		countdownhandler.NewCountdownHandler(driver, logger),
	)

	server := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.HTTPPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
