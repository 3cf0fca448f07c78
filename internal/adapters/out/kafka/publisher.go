// Package kafka publishes allocation events to a Kafka topic. Messages are
// keyed by warehouse id so events of one warehouse stay in one partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agrilogistics/internal/core/domain/model/order"
	"agrilogistics/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

// EventTypeOrderAllocated is carried in the event-type message header.
const EventTypeOrderAllocated = "order.allocated"

// Writer is the part of *kafkago.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// OrderAllocatedEvent is the JSON payload of an order.allocated message.
type OrderAllocatedEvent struct {
	OrderID     string    `json:"orderId"`
	TraderID    string    `json:"traderId"`
	WarehouseID string    `json:"warehouseId"`
	Crop        string    `json:"crop"`
	Grade       string    `json:"grade"`
	Quantity    float64   `json:"quantity"`
	DistanceKm  float64   `json:"distanceKm"`
	ETAMinutes  int       `json:"etaMinutes"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newOrderAllocatedEvent(o *order.Order) OrderAllocatedEvent {
	return OrderAllocatedEvent{
		OrderID:     o.ID().String(),
		TraderID:    o.TraderID().String(),
		WarehouseID: o.WarehouseID().String(),
		Crop:        o.Produce().Crop,
		Grade:       o.Produce().Grade,
		Quantity:    o.Quantity(),
		DistanceKm:  o.DistanceKm(),
		ETAMinutes:  o.ETAMinutes(),
		CreatedAt:   o.CreatedAt(),
	}
}

var _ ports.EventPublisher = (*Publisher)(nil)

type Publisher struct {
	writer Writer
}

// NewPublisher creates a publisher writing to topic on the given brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return NewPublisherWithWriter(&kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

// PublishOrderAllocated implements ports.EventPublisher.
func (p *Publisher) PublishOrderAllocated(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(newOrderAllocatedEvent(o))
	if err != nil {
		return fmt.Errorf("marshal order allocated event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(o.WarehouseID().String()),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(EventTypeOrderAllocated)},
		},
		Time: o.CreatedAt(),
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka write: %w", ports.ErrUpstreamUnavailable, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderAllocated(context.Context, *order.Order) error {
	return nil
}
