package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/ahmedkucuk23/balance-notifications/internal/conference"
	"github.com/ahmedkucuk23/balance-notifications/internal/mailer"
	"github.com/ahmedkucuk23/balance-notifications/internal/messaging"
	"github.com/ahmedkucuk23/balance-notifications/internal/notifier"
	"github.com/ahmedkucuk23/balance-notifications/internal/telemetry"
	"github.com/ahmedkucuk23/balance-notifications/internal/worker"
)

const (
	serviceName    = "notifications-worker"
	serviceVersion = "0.1.0"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	var dates notifier.EventDateSource
	if postgresURL := os.Getenv("POSTGRES_URL"); postgresURL != "" {
		db, err := telemetry.OpenDB("postgres", postgresURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		dates = conference.NewRepository(db)
	}

	sender := mailer.NewResend(mailer.ResendConfig{
		APIKey: os.Getenv("RESEND_API_KEY"),
		From:   os.Getenv("EMAIL_FROM"),
	})
	dispatcher := notifier.New(sender, os.Getenv("EMAIL_FROM"), dates, logger)
	handler := worker.NewPaymentSuccessHandler(dispatcher, logger)

	brokers := strings.Split(kafkaBrokers, ",")
	consumer := messaging.NewConsumer(brokers, "payment.succeeded", "notification-worker",
		messaging.WithAckAlways())
	defer func() { _ = consumer.Close() }()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting notification worker", "brokers", brokers)

	if err := consumer.Consume(ctx, handler.Handle); err != nil {
		if ctx.Err() == context.Canceled {
			logger.Info("consumer stopped")
			return
		}
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}
