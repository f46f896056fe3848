// Package events publishes exchange lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Publisher is fire-and-forget: delivery failures are logged and never
// reach the caller, whose transaction has already committed.
type Publisher struct {
	producer sarama.AsyncProducer
	topic    string
	log      *zap.Logger
	wg       sync.WaitGroup
}

func NewPublisher(producer sarama.AsyncProducer, topic string, log *zap.Logger) *Publisher {
	p := &Publisher{
		producer: producer,
		topic:    topic,
		log:      log.Named("events"),
	}
	p.wg.Add(1)
	go p.drainErrors()
	return p
}

func (p *Publisher) drainErrors() {
	defer p.wg.Done()
	for perr := range p.producer.Errors() {
		p.log.Warn("publish event", zap.Error(perr.Err), zap.String("topic", perr.Msg.Topic))
	}
}

func (p *Publisher) Publish(ctx context.Context, e model.ExchangeEvent) {
	if p == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		p.log.Error("marshal event", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.ExchangeID.String()),
		Value: sarama.ByteEncoder(data),
	}
	select {
	case p.producer.Input() <- msg:
	case <-ctx.Done():
		p.log.Warn("event dropped", zap.String("type", string(e.Type)), zap.Error(ctx.Err()))
	}
}

// Close flushes buffered messages and waits for the error drain to finish.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.producer.AsyncClose()
	p.wg.Wait()
	return nil
}
