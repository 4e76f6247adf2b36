package repository

import (
	"context"
	"time"

	"github.com/vipcleaners/pos-api/internal/domain/entity"
)

// OrderFilter filtros de listado de órdenes.
type OrderFilter struct {
	Status   entity.OrderStatus // vacío = todas
	ClientID string
	Limit    int
	Offset   int
}

// OrderRepository define el puerto de persistencia para órdenes e ítems.
type OrderRepository interface {
	// Create persiste la orden y sus ítems.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, at time.Time) error
	AddStatusChange(ctx context.Context, change entity.OrderStatusChange) error
}
