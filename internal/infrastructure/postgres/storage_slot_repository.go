package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
)

var _ repository.StorageSlotRepository = (*StorageSlotRepo)(nil)

// StorageSlotRepo implementación de StorageSlotRepository (usable con pool o tx).
// Un slot está activo mientras su orden no esté en Delivered.
type StorageSlotRepo struct {
	q Querier
}

// NewStorageSlotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorageSlotRepository(q Querier) *StorageSlotRepo {
	return &StorageSlotRepo{q: q}
}

const slotColumns = `s.item_id, s.order_id, s.box, s.location_code, s.special_notes, s.assigned_by, s.assigned_at, s.created_at, o.status`

const occupantSelect = `
	SELECT s.item_id, s.order_id, o.reference, o.status, c.display_name, s.location_code, s.box
	FROM storage_slots s
	JOIN orders o ON o.id = s.order_id
	JOIN clients c ON c.id = o.client_id`

// Create persiste un slot recién recibido (normalmente sin código).
func (r *StorageSlotRepo) Create(ctx context.Context, slot *entity.StorageSlot) error {
	query := `
		INSERT INTO storage_slots (item_id, order_id, box, location_code, special_notes, assigned_by, assigned_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		slot.ItemID, slot.OrderID, slot.Box, slot.LocationCode, slot.SpecialNotes,
		slot.AssignedBy, slot.AssignedAt, slot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert storage slot: %w", err)
	}
	return nil
}

// GetByItemID obtiene el slot del ítem junto con el estado de su orden.
func (r *StorageSlotRepo) GetByItemID(ctx context.Context, itemID string) (*entity.StorageSlot, error) {
	query := `SELECT ` + slotColumns + `
		FROM storage_slots s JOIN orders o ON o.id = s.order_id
		WHERE s.item_id = $1`
	s, err := scanSlot(r.q.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage slot: %w", err)
	}
	return s, nil
}

// ListByOrder lista los slots de una orden.
func (r *StorageSlotRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.StorageSlot, error) {
	query := `SELECT ` + slotColumns + `
		FROM storage_slots s JOIN orders o ON o.id = s.order_id
		WHERE s.order_id = $1 ORDER BY s.created_at, s.item_id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list storage slots: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan storage slot: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CountActiveByBox cuenta slots con código de la caja cuyas órdenes siguen activas.
func (r *StorageSlotRepo) CountActiveByBox(ctx context.Context, box string) (int, error) {
	query := `
		SELECT COUNT(*) FROM storage_slots s
		JOIN orders o ON o.id = s.order_id
		WHERE s.box = $1 AND s.location_code IS NOT NULL AND o.status <> $2`
	var n int
	if err := r.q.QueryRow(ctx, query, box, string(entity.OrderStatusDelivered)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active slots: %w", err)
	}
	return n, nil
}

// CodeExists busca el código en todo el historial, sin importar el estado de la orden.
func (r *StorageSlotRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM storage_slots WHERE location_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check location code: %w", err)
	}
	return exists, nil
}

// FindActiveByCode devuelve el ocupante activo del código; nil si está libre.
func (r *StorageSlotRepo) FindActiveByCode(ctx context.Context, code string) (*entity.SlotOccupant, error) {
	query := occupantSelect + `
		WHERE s.location_code = $1 AND o.status <> $2
		ORDER BY s.assigned_at DESC NULLS LAST
		LIMIT 1`
	occ, err := scanOccupant(r.q.QueryRow(ctx, query, code, string(entity.OrderStatusDelivered)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active location code: %w", err)
	}
	return &occ, nil
}

// ListActiveByBox lista los ocupantes activos con código de la caja, ordenados por código.
func (r *StorageSlotRepo) ListActiveByBox(ctx context.Context, box string) ([]entity.SlotOccupant, error) {
	query := occupantSelect + `
		WHERE s.box = $1 AND s.location_code IS NOT NULL AND o.status <> $2
		ORDER BY s.location_code, o.reference`
	rows, err := r.q.Query(ctx, query, box, string(entity.OrderStatusDelivered))
	if err != nil {
		return nil, fmt.Errorf("list box occupants: %w", err)
	}
	defer rows.Close()
	var list []entity.SlotOccupant
	for rows.Next() {
		occ, err := scanOccupant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan box occupant: %w", err)
		}
		list = append(list, occ)
	}
	return list, rows.Err()
}

// AssignLocation fija caja, código y notas del slot.
func (r *StorageSlotRepo) AssignLocation(ctx context.Context, itemID, box, code, notes, assignedBy string, at time.Time) error {
	query := `
		UPDATE storage_slots
		SET box = $2, location_code = $3, special_notes = $4, assigned_by = $5, assigned_at = $6
		WHERE item_id = $1`
	tag, err := r.q.Exec(ctx, query, itemID, box, code, notes, assignedBy, at)
	if err != nil {
		return fmt.Errorf("assign location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Espacios de advisory locks: cajas y códigos no comparten claves.
const (
	lockSpaceBox  = 1
	lockSpaceCode = 2
)

// LockBox toma un advisory lock transaccional por clave de caja; se libera en Commit/Rollback.
// Fuera de una tx el lock se suelta al terminar la sentencia.
func (r *StorageSlotRepo) LockBox(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int, hashtext($2))`, lockSpaceBox, key); err != nil {
		return fmt.Errorf("lock box: %w", err)
	}
	return nil
}

// LockCode toma un advisory lock transaccional por código de ubicación.
func (r *StorageSlotRepo) LockCode(ctx context.Context, code string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int, hashtext($2))`, lockSpaceCode, code); err != nil {
		return fmt.Errorf("lock location code: %w", err)
	}
	return nil
}

func scanSlot(row pgx.Row) (*entity.StorageSlot, error) {
	var (
		s      entity.StorageSlot
		status string
	)
	err := row.Scan(&s.ItemID, &s.OrderID, &s.Box, &s.LocationCode, &s.SpecialNotes,
		&s.AssignedBy, &s.AssignedAt, &s.CreatedAt, &status)
	if err != nil {
		return nil, err
	}
	s.OrderStatus = entity.OrderStatus(status)
	return &s, nil
}

func scanOccupant(row pgx.Row) (entity.SlotOccupant, error) {
	var (
		occ    entity.SlotOccupant
		status string
	)
	err := row.Scan(&occ.ItemID, &occ.OrderID, &occ.OrderReference, &status,
		&occ.ClientDisplayName, &occ.LocationCode, &occ.Box)
	occ.OrderStatus = entity.OrderStatus(status)
	return occ, err
}
