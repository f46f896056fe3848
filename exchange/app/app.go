package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/config"
	"github.com/Astemirdum/book-exchange/exchange/internal/events"
	"github.com/Astemirdum/book-exchange/exchange/internal/handler"
	"github.com/Astemirdum/book-exchange/exchange/internal/jobs"
	"github.com/Astemirdum/book-exchange/exchange/internal/repository"
	"github.com/Astemirdum/book-exchange/exchange/internal/server"
	"github.com/Astemirdum/book-exchange/exchange/internal/service"
	"github.com/Astemirdum/book-exchange/exchange/internal/valuation"
	"github.com/Astemirdum/book-exchange/exchange/migrations"
	"github.com/Astemirdum/book-exchange/pkg/auth"
	"github.com/Astemirdum/book-exchange/pkg/kafka"
	"github.com/Astemirdum/book-exchange/pkg/logger"
	"github.com/Astemirdum/book-exchange/pkg/postgres"
	"github.com/Astemirdum/book-exchange/pkg/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "book-exchange"

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "exchange")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, serviceName)
	if err != nil {
		log.Fatal("telemetry.Setup", zap.Error(err))
	}
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var (
		opts      []service.Option
		publisher *events.Publisher
	)
	if cfg.Kafka.Enabled {
		if err := kafka.CreateTopics(cfg.Kafka, kafka.ExchangeEventsTopic, kafka.PaymentsSettledTopic); err != nil {
			log.Warn("kafka.CreateTopics", zap.Error(err))
		}
		producer, err := kafka.NewAsyncProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewAsyncProducer", zap.Error(err))
		}
		publisher = events.NewPublisher(producer, kafka.ExchangeEventsTopic, log)
		opts = append(opts, service.WithEvents(publisher))
	}
	svc := service.NewService(repo, NewValuer(cfg.Valuation, log), log, opts...)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Kafka.Enabled {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.PaymentsConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		defer consumer.Close()
		g.Go(func() error {
			return kafka.Consume(gctx, consumer, handler.NewConsumer(svc.SettlePayment, log), kafka.PaymentsSettledTopic)
		})
	}

	scheduler := jobs.NewScheduler(svc, log)
	if cfg.Sweep.Enabled {
		if err := scheduler.RegisterSweep(cfg.Sweep.Spec); err != nil {
			log.Fatal("scheduler", zap.Error(err))
		}
	}
	scheduler.Start()

	h := handler.New(svc, svc, svc, auth.NewVerifier(cfg.Auth), log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case termSig := <-sig:
		log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	case <-gctx.Done():
		log.Error("background worker stopped", zap.Error(g.Wait()))
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	scheduler.Stop()
	cancel()
	if err := g.Wait(); err != nil {
		log.Warn("background workers", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		log.Warn("publisher.Close", zap.Error(err))
	}
	if err := shutdownTracing(closeCtx); err != nil {
		log.Warn("telemetry shutdown", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

// NewValuer picks the pricing source from config.
func NewValuer(cfg config.Valuation, log *zap.Logger) valuation.Valuer {
	local := valuation.ConditionValuer{}
	if cfg.Mode == config.ValuationModeHTTP && cfg.BaseURL != "" {
		return valuation.NewHTTPValuer(cfg.BaseURL, cfg.Timeout, local, log)
	}
	return local
}
