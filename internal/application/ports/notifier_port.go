package ports

import (
	"context"
	"time"
)

// OrderStatusEvent se emite cada vez que una orden cambia de estado.
type OrderStatusEvent struct {
	OrderID     string    `json:"order_id"`
	Reference   string    `json:"reference"`
	ClientID    string    `json:"client_id"`
	ClientPhone string    `json:"client_phone,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ChangedBy   string    `json:"changed_by"`
	ChangedAt   time.Time `json:"changed_at"`
}

// BookingCreatedEvent se emite cuando un visitante reserva desde el sitio público.
type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	PickupDate time.Time `json:"pickup_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notifier define el puerto de salida para notificaciones (RabbitMQ, log, mock).
// Un fallo al notificar nunca revierte la operación de negocio que lo originó.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, evt OrderStatusEvent) error
	BookingCreated(ctx context.Context, evt BookingCreatedEvent) error
}
