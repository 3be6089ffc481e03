// Package notify announces new individual orders to the shop staff tooling.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/flowershop/config"
	"github.com/flowershop/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher sends order events somewhere staff will see them
type Publisher interface {
	PublishIndividualOrder(ctx context.Context, order *models.IndividualOrder) error
	Close() error
}

// New returns an AMQP publisher, or a no-op one when no broker URL is set
func New(cfg config.AMQPConfig) (Publisher, error) {
	if cfg.URL == "" {
		logrus.Info("AMQP_URL not set, individual order notifications disabled")
		return NopPublisher{}, nil
	}
	return DialAMQP(cfg)
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) PublishIndividualOrder(context.Context, *models.IndividualOrder) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

// IndividualOrderEvent is the message body published for a new order
type IndividualOrderEvent struct {
	Event  string                  `json:"event"`
	Order  *models.IndividualOrder `json:"order"`
	SentAt time.Time               `json:"sent_at"`
}

// Channel is the subset of *amqp.Channel used for publishing
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes order events to a topic exchange
type AMQPPublisher struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	ch         Channel
	exchange   string
	routingKey string
}

// DialAMQP connects to the broker and declares the exchange
func DialAMQP(cfg config.AMQPConfig) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := NewAMQPPublisher(ch, cfg.Exchange, cfg.RoutingKey)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn

	logrus.WithField("exchange", cfg.Exchange).Info("AMQP publisher ready")
	return p, nil
}

// NewAMQPPublisher declares the exchange on an open channel
func NewAMQPPublisher(ch Channel, exchange, routingKey string) (*AMQPPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}
	return &AMQPPublisher{ch: ch, exchange: exchange, routingKey: routingKey}, nil
}

// PublishIndividualOrder sends the order as a persistent JSON message
func (p *AMQPPublisher) PublishIndividualOrder(ctx context.Context, order *models.IndividualOrder) error {
	body, err := json.Marshal(IndividualOrderEvent{
		Event:  "individual_order.created",
		Order:  order,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    order.Reference.String(),
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish individual order %s: %w", order.Reference, err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
