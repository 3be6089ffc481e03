package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/flowershop/config"
	"github.com/flowershop/models"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable).Error(0)
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestNewWithoutURLIsNop(t *testing.T) {
	p, err := New(config.AMQPConfig{})
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.PublishIndividualOrder(context.Background(), &models.IndividualOrder{}))
	assert.NoError(t, p.Close())
}

func TestPublishIndividualOrder(t *testing.T) {
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", "flowershop", "topic", true).Return(nil)

	order := &models.IndividualOrder{Reference: uuid.New(), Name: "Anna", Phone: "+4915123456", Description: "Tulips"}
	ch.On("PublishWithContext", "flowershop", "individual_order.created", mock.MatchedBy(func(msg amqp.Publishing) bool {
		var ev IndividualOrderEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp.Persistent &&
			msg.MessageId == order.Reference.String() &&
			ev.Event == "individual_order.created" &&
			ev.Order.Name == "Anna"
	})).Return(nil)
	ch.On("Close").Return(nil)

	p, err := NewAMQPPublisher(ch, "flowershop", "individual_order.created")
	require.NoError(t, err)
	require.NoError(t, p.PublishIndividualOrder(context.Background(), order))
	require.NoError(t, p.Close())

	ch.AssertExpectations(t)
}

func TestPublishFailureIsWrapped(t *testing.T) {
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", "flowershop", "topic", true).Return(nil)
	ch.On("PublishWithContext", "flowershop", "orders", mock.Anything).Return(errors.New("channel closed"))

	p, err := NewAMQPPublisher(ch, "flowershop", "orders")
	require.NoError(t, err)

	err = p.PublishIndividualOrder(context.Background(), &models.IndividualOrder{Reference: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestExchangeDeclareFailure(t *testing.T) {
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", "flowershop", "topic", true).Return(errors.New("access refused"))

	_, err := NewAMQPPublisher(ch, "flowershop", "orders")
	assert.Error(t, err)
}
