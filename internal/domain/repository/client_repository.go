package repository

import (
	"context"

	"github.com/vipcleaners/pos-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Client, error)
	// List filtra por nombre o teléfono cuando query no está vacío.
	List(ctx context.Context, query string, limit, offset int) ([]*entity.Client, int, error)
}
