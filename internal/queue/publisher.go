package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// orderConfirmedQueue is the durable queue order events land on.
const orderConfirmedQueue = "order.confirmed"

// Publisher sends domain events to RabbitMQ. Publishing is best-effort:
// errors are logged and returned so callers can ignore them without
// interrupting the request flow. An empty URL disables publishing.
type Publisher struct {
	URL string
	Log zerolog.Logger
}

// PublishOrderConfirmed declares the durable order.confirmed queue and
// publishes the event as persistent JSON. It dials per call.
func (p *Publisher) PublishOrderConfirmed(ctx context.Context, ev OrderConfirmedEvent) error {
	if p.URL == "" {
		return nil
	}
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(orderConfirmedQueue, true, false, false, false, nil); err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", orderConfirmedQueue, false, false, pub); err != nil {
		p.Log.Error().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
