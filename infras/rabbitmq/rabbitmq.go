package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"roomdesk/config"
	"roomdesk/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const exchangeKind = "topic"

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

type publisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	mu         sync.Mutex
}

// New dials the broker and declares the exchange. A disabled broker yields a publisher that drops messages.
func New(config *config.Config) Publisher {
	if !config.Broker.RabbitMQ.Enable {
		log.Info().Msg("RabbitMQ disabled, room events will not be published")

		return NewNoop()
	}

	pub, err := Dial(config.Broker.RabbitMQ.URL, config.Broker.RabbitMQ.Exchange)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
	}

	return pub
}

func Dial(url, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		exchangeKind,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()

		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("Connected to RabbitMQ")

	return &publisher{
		connection: conn,
		channel:    ch,
		exchange:   exchange,
	}, nil
}

func (p *publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("publish cancelled: %w", err)
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  constant.ContentTypeJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	return nil
}

func (p *publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return fmt.Errorf("failed to close channel: %w", err)
	}

	if err := p.connection.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}

type noop struct{}

func NewNoop() Publisher {
	return noop{}
}

func (noop) Publish(_ context.Context, routingKey string, _ any) error {
	log.Debug().Str("routingKey", routingKey).Msg("event dropped, broker disabled")

	return nil
}

func (noop) Close() error { return nil }
