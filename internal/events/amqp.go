package events

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher mirrors dispatched events to a RabbitMQ topic
// exchange so external consumers can react to ticket activity.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewAMQPPublisher connects and declares the exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends the event JSON under routing key helpdesk.ticket.<type>.
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.channel.PublishWithContext(ctx,
		p.exchange,
		"helpdesk.ticket."+string(event.Type),
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			MessageId:   event.ID,
			Timestamp:   event.Timestamp,
			Body:        body,
		},
	)
}

// Close releases channel and connection.
func (p *AMQPPublisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Mirror subscribes the publisher to every event type on the
// dispatcher.
func (p *AMQPPublisher) Mirror(dispatcher Dispatcher) {
	handler := func(ctx context.Context, event Event) error {
		return p.Publish(ctx, event)
	}
	for _, eventType := range []EventType{
		EventTicketCreated,
		EventTicketStatusChanged,
		EventTicketAssigned,
		EventTicketRemarkAdded,
		EventTicketResolved,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
