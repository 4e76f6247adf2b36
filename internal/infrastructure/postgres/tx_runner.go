package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vipcleaners/pos-api/internal/application/orders"
	"github.com/vipcleaners/pos-api/internal/application/storage"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
)

var (
	_ storage.TxRunner = (*TxRunner)(nil)
	_ orders.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunStorage ejecuta fn con el repositorio de slots atado a la tx (asignación de ubicaciones).
func (r *TxRunner) RunStorage(ctx context.Context, fn func(slots repository.StorageSlotRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStorageSlotRepository(tx))
	})
}

// RunOrders ejecuta fn con repos de órdenes y slots atados a la misma tx.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository, slotRepo repository.StorageSlotRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx), NewStorageSlotRepository(tx))
	})
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
