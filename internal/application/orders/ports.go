package orders

import (
	"context"

	"github.com/vipcleaners/pos-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repos de órdenes y slots atados a ella.
// Crear una orden y sus slots de almacenamiento es atómico.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		slotRepo repository.StorageSlotRepository,
	) error) error
}
