package repository

import (
	"context"

	"github.com/vipcleaners/pos-api/internal/domain/entity"
)

// BookingRepository reservas públicas.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
}
