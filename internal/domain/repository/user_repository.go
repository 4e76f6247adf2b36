package repository

import (
	"context"
	"time"

	"github.com/vipcleaners/pos-api/internal/domain/entity"
)

// UserRepository persistencia de empleados.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve todos los empleados ordenados por nombre.
	List(ctx context.Context) ([]*entity.User, error)
	// SetStatus cambia el estado de la cuenta; ErrNotFound si no existe.
	SetStatus(ctx context.Context, id, status string, at time.Time) error
}
