package repository

import (
	"context"
	"time"

	"github.com/vipcleaners/pos-api/internal/domain/entity"
)

// StorageSlotRepository define el puerto de persistencia para las asignaciones ítem → ubicación.
// "Activo" significa que la orden dueña no está en estado Delivered.
type StorageSlotRepository interface {
	Create(ctx context.Context, slot *entity.StorageSlot) error
	GetByItemID(ctx context.Context, itemID string) (*entity.StorageSlot, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.StorageSlot, error)
	// CountActiveByBox cuenta los slots con código en la caja (coincidencia exacta) de órdenes activas.
	CountActiveByBox(ctx context.Context, box string) (int, error)
	// CodeExists busca el código exacto en todos los registros, sin filtrar por estado.
	CodeExists(ctx context.Context, code string) (bool, error)
	// FindActiveByCode devuelve el ocupante activo del código o nil si está libre.
	FindActiveByCode(ctx context.Context, code string) (*entity.SlotOccupant, error)
	// ListActiveByBox lista los ocupantes activos con código de la caja, ordenados por código.
	ListActiveByBox(ctx context.Context, box string) ([]entity.SlotOccupant, error)
	AssignLocation(ctx context.Context, itemID, box, code, notes, assignedBy string, at time.Time) error
	// LockBox serializa asignaciones sobre la misma clave de caja hasta el fin de la transacción.
	LockBox(ctx context.Context, key string) error
	// LockCode serializa asignaciones del mismo código, sin importar la caja, hasta el fin de la transacción.
	LockCode(ctx context.Context, code string) error
}
