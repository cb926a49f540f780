package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/ahmedkucuk23/balance-notifications/internal/conference"
	"github.com/ahmedkucuk23/balance-notifications/internal/mailer"
	"github.com/ahmedkucuk23/balance-notifications/internal/messaging"
	"github.com/ahmedkucuk23/balance-notifications/internal/notifier"
	"github.com/ahmedkucuk23/balance-notifications/internal/notifyapi"
	"github.com/ahmedkucuk23/balance-notifications/internal/telemetry"
)

const (
	serviceName    = "notifications-api"
	serviceVersion = "0.1.0"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := otelruntime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
	}

	// The event-date lookup is optional: without a database the emails carry
	// the placeholder date.
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

	var producer *messaging.Producer
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		producer = messaging.NewProducer(strings.Split(kafkaBrokers, ","), "payment.succeeded")
		defer func() { _ = producer.Close() }()
	}

	handler := notifyapi.NewHandler(publisherOrNil(producer), dispatcher, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /notifications/payment-success", telemetry.WithHTTPRoute(handler.HandlePaymentSuccess))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", metricsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting notifications api", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// publisherOrNil avoids handing the handler a non-nil interface wrapping a
// nil *Producer.
func publisherOrNil(p *messaging.Producer) notifyapi.Publisher {
	if p == nil {
		return nil
	}
	return p
}
