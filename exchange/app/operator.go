package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/config"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/exchange/internal/repository"
	"github.com/Astemirdum/book-exchange/exchange/internal/service"
	"github.com/Astemirdum/book-exchange/exchange/migrations"
	"github.com/Astemirdum/book-exchange/pkg/kafka"
	"github.com/Astemirdum/book-exchange/pkg/logger"
	"github.com/Astemirdum/book-exchange/pkg/postgres"
	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Operator is the part of the service available to exchangectl.
type Operator interface {
	ExpireStale(ctx context.Context, now time.Time) (int, error)
	TrustScore(ctx context.Context, userID uuid.UUID) (model.TrustScore, error)
	AssessUser(ctx context.Context, userID uuid.UUID) (model.Assessment, error)
}

var _ Operator = (*service.Service)(nil)

// WithOperator opens the database and builds the service for one command.
func WithOperator(ctx context.Context, cfg *config.Config, fn func(Operator) error) error {
	log := logger.NewLogger(cfg.Log, "exchangectl")
	defer log.Sync() //nolint:errcheck

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return err
	}
	return fn(service.NewService(repo, NewValuer(cfg.Valuation, log), log))
}

// PublishPayment puts a settled payment on the payments topic, the way the
// payments relay does.
func PublishPayment(cfg kafka.Config, paymentID string, userID uuid.UUID, points int) error {
	producer, err := kafka.NewSyncProducer(cfg)
	if err != nil {
		return errors.Wrap(err, "kafka.NewSyncProducer")
	}
	defer producer.Close()
	return publishPayment(producer, model.PaymentSettled{PaymentID: paymentID, UserID: userID, Points: points})
}

func publishPayment(producer sarama.SyncProducer, p model.PaymentSettled) error {
	if p.PaymentID == "" || p.Points <= 0 {
		return errors.New("payment needs an id and a positive amount")
	}
	value, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal payment")
	}
	_, _, err = producer.SendMessage(&sarama.ProducerMessage{
		Topic: kafka.PaymentsSettledTopic,
		Key:   sarama.StringEncoder(p.PaymentID),
		Value: sarama.ByteEncoder(value),
	})
	return errors.Wrap(err, "send payment")
}
