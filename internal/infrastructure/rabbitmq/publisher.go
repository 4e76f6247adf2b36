package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vipcleaners/pos-api/internal/application/ports"
	"github.com/vipcleaners/pos-api/pkg/logger"
)

// Routing keys publicadas en el exchange topic.
const (
	RoutingOrderStatus    = "order.status"
	RoutingBookingCreated = "booking.created"
)

var _ ports.Notifier = (*Publisher)(nil)

// Publisher publica eventos del local (cambios de estado de orden, reservas nuevas)
// en un exchange topic para que otros servicios avisen al cliente por WhatsApp/SMS.
type Publisher struct {
	conn     Connection
	exchange string
	log      *logger.Logger
}

// NewPublisher declara el exchange (topic, durable) y devuelve el publicador.
func NewPublisher(conn Connection, exchange string, log *logger.Logger) (*Publisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, exchange: exchange, log: log}, nil
}

// OrderStatusChanged publica con routing key order.status.<estado>, ej. order.status.ready.
func (p *Publisher) OrderStatusChanged(ctx context.Context, evt ports.OrderStatusEvent) error {
	key := RoutingOrderStatus + "." + routingSegment(evt.To)
	return p.publish(ctx, key, evt.OrderID, evt)
}

// BookingCreated publica con routing key booking.created.
func (p *Publisher) BookingCreated(ctx context.Context, evt ports.BookingCreatedEvent) error {
	return p.publish(ctx, RoutingBookingCreated, evt.BookingID, evt)
}

func (p *Publisher) publish(ctx context.Context, key, messageID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    messageID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publicar %s: %w", key, err)
	}
	p.log.Debug().Str("routing_key", key).Str("message_id", messageID).Msg("evento publicado")
	return nil
}

// routingSegment "In Process" -> "in_process".
func routingSegment(status string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(status)), " ", "_")
}

// LogNotifier sustituye al broker cuando BROKER_URL está vacío: solo registra los eventos.
type LogNotifier struct {
	log *logger.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

// NewLogNotifier construye el notificador de solo log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) OrderStatusChanged(_ context.Context, evt ports.OrderStatusEvent) error {
	n.log.Info().Str("order_id", evt.OrderID).Str("reference", evt.Reference).
		Str("from", evt.From).Str("to", evt.To).Msg("notificación de estado (sin broker)")
	return nil
}

func (n *LogNotifier) BookingCreated(_ context.Context, evt ports.BookingCreatedEvent) error {
	n.log.Info().Str("booking_id", evt.BookingID).Time("pickup_date", evt.PickupDate).
		Msg("notificación de reserva (sin broker)")
	return nil
}
