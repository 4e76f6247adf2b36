package repository

import (
	"context"

	"github.com/vipcleaners/pos-api/internal/domain/entity"
)

// CleaningServiceRepository catálogo de servicios.
type CleaningServiceRepository interface {
	Create(ctx context.Context, svc *entity.CleaningService) error
	GetByID(ctx context.Context, id string) (*entity.CleaningService, error)
	Update(ctx context.Context, svc *entity.CleaningService) error
	List(ctx context.Context, onlyActive bool) ([]*entity.CleaningService, error)
}
