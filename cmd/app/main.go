package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	api "fulfillment/internal/adapters/in/http"
	kafkain "fulfillment/internal/adapters/in/kafka"
	kafkaout "fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres/migrations"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(configs.LogLevel, "fulfillment")
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	applied, err := migrations.Up(configs.DSN())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("migrations checked", zap.Bool("applied", applied))

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	var adapters cmd.Adapters
	if configs.RabbitMQURL != "" {
		notifier, err := rabbitmq.Dial(configs.RabbitMQURL, rabbitmq.Queues{
			Email: configs.RabbitMQEmailQueue,
			SMS:   configs.RabbitMQSMSQueue,
		})
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer notifier.Close() //nolint:errcheck
		adapters.Notifier = notifier
	}

	brokers := configs.KafkaBrokers()
	if len(brokers) > 0 {
		publisher, err := kafkaout.NewOrderStatusPublisher(brokers, configs.KafkaOrderChangedTopic, log)
		if err != nil {
			return fmt.Errorf("connect kafka producer: %w", err)
		}
		defer publisher.Close() //nolint:errcheck
		adapters.Publisher = publisher
	}

	app := cmd.NewCompositionRoot(configs, gormDB, adapters, log)

	var carrierEventsJob *jobs.CarrierEventsJob
	if len(brokers) > 0 {
		reconciler := app.CreateReconcileCarrierUpdateCommandHandler()
		consumer := kafkain.NewCarrierEventsConsumer(
			brokers,
			configs.KafkaCarrierEventsTopic,
			configs.KafkaConsumerGroup,
			&reconciler,
			log,
		)
		carrierEventsJob = jobs.NewCarrierEventsJob(consumer, log)
	}

	jobManager := jobs.NewJobManager(app.CreateOutboxRelayJob(), carrierEventsJob)
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return startWebServer(ctx, app, configs, log)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, configs cmd.Config, log *zap.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(api.RequestLogger(log))

	server := api.NewServer(app.HTTPHandlers(), configs.TrackingBaseURL, log)
	api.RegisterHandlers(e, server, api.WebhookOptions{
		Secret:             configs.WebhookSecret,
		RateLimitPerMinute: configs.WebhookRateLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
