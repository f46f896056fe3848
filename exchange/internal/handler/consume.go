package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

type settlePayment func(ctx context.Context, p model.PaymentSettled) error

// Consumer applies settled payments from the payments topic.
type Consumer struct {
	settlePaymentHandler settlePayment
	log                  *zap.Logger
	ready                chan bool
	retries              uint64
	backoff              time.Duration
}

type ConsumerOption func(*Consumer)

// WithRetry sets how often a failing payment is retried before the claim is
// given up, and the base of the exponential backoff between attempts.
func WithRetry(retries uint64, backoff time.Duration) ConsumerOption {
	return func(c *Consumer) {
		c.retries = retries
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

func NewConsumer(settle settlePayment, log *zap.Logger, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		settlePaymentHandler: settle,
		log:                  log.Named("consumer"),
		ready:                make(chan bool),
		retries:              5,
		backoff:              200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ready is closed once the first session is set up.
func (consumer *Consumer) Ready() <-chan bool {
	return consumer.ready
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-consumer.ready:
	default:
		close(consumer.ready)
	}
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var p model.PaymentSettled
			if err := json.Unmarshal(message.Value, &p); err != nil {
				consumer.log.Error("decode payment", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.settle(session.Context(), p); err != nil {
				// business rejections will never succeed on redelivery
				if _, ok := errs.As(err); ok {
					consumer.log.Error("payment rejected", zap.String("payment_id", p.PaymentID), zap.Error(err))
					session.MarkMessage(message, "")
					continue
				}
				// Later offsets must stay uncommitted, so the claim ends here and the
				// next session resumes from this message.
				consumer.log.Error("consumer.settlePaymentHandler", zap.String("payment_id", p.PaymentID), zap.Error(err))
				return errors.Wrapf(err, "settle payment %s at offset %d", p.PaymentID, message.Offset)
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (consumer *Consumer) settle(ctx context.Context, p model.PaymentSettled) error {
	b := retry.WithMaxRetries(consumer.retries, retry.NewExponential(consumer.backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := consumer.settlePaymentHandler(ctx, p)
		if err == nil {
			return nil
		}
		if _, ok := errs.As(err); ok {
			return err
		}
		consumer.log.Warn("settle payment, retrying", zap.String("payment_id", p.PaymentID), zap.Error(err))
		return retry.RetryableError(err)
	})
}
