package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/events"
	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublisher_Publish(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Errors = true
	producer := mocks.NewAsyncProducer(t, cfg)

	ev := model.ExchangeEvent{
		Type:        model.EventCompleted,
		ExchangeID:  uuid.New(),
		BookID:      uuid.New(),
		RequesterID: uuid.New(),
		OwnerID:     uuid.New(),
		Points:      30,
		Timestamp:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	producer.ExpectInputWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "exchange.events" {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != ev.ExchangeID.String() {
			return fmt.Errorf("unexpected key %q", key)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got model.ExchangeEvent
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.Type != ev.Type || got.ExchangeID != ev.ExchangeID || got.Points != ev.Points || !got.Timestamp.Equal(ev.Timestamp) {
			return fmt.Errorf("unexpected event %+v", got)
		}
		return nil
	})
	producer.ExpectInputAndFail(sarama.ErrOutOfBrokers)

	p := events.NewPublisher(producer, "exchange.events", zap.NewExample().Named("test"))
	p.Publish(context.Background(), ev)
	p.Publish(context.Background(), ev)
	require.NoError(t, p.Close())
}

func TestPublisher_Nil(t *testing.T) {
	var p *events.Publisher
	p.Publish(context.Background(), model.ExchangeEvent{})
	require.NoError(t, p.Close())
}
