package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de una orden de limpieza.
type OrderStatus string

// Estados de orden. Delivered y Cancelled son terminales.
const (
	OrderStatusReceived  OrderStatus = "Received"
	OrderStatusInProcess OrderStatus = "In Process"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusReceived:  {OrderStatusInProcess, OrderStatusCancelled},
	OrderStatusInProcess: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusDelivered, OrderStatusCancelled},
}

// Valid indica si el estado es uno de los conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusInProcess, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si la orden ya no admite cambios de estado.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo valida el avance de estado: Received → In Process → Ready → Delivered,
// y Cancelled desde cualquier estado no terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order representa una orden de servicio (uno o varios pares de zapatos de un cliente).
type Order struct {
	ID          string
	Reference   string // VIP-YYYYMMDD-XXXX, visible para el cliente
	ClientID    string
	Status      OrderStatus
	Total       decimal.Decimal
	Notes       string
	CreatedBy   string
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

// OrderItem un par de zapatos dentro de una orden, con el servicio aplicado.
type OrderItem struct {
	ID          string
	OrderID     string
	ServiceID   string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	Slot        *StorageSlot
}

// OrderStatusChange registro histórico de cambios de estado.
type OrderStatusChange struct {
	OrderID   string
	From      OrderStatus
	To        OrderStatus
	ChangedBy string
	ChangedAt time.Time
}
