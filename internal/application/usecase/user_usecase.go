package usecase

import (
	"context"
	"time"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
)

// UserUseCase consulta y administración de cuentas de empleados.
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now}
}

// GetByID devuelve el empleado; nil si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// List todos los empleados.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserDTO(u))
	}
	return out, nil
}

// SetActive activa o desactiva una cuenta. Un administrador no puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actorID, id string, active bool) (*dto.UserResponse, error) {
	if !active && actorID == id {
		return nil, domain.ErrConflict
	}
	status := entity.UserStatusInactive
	if active {
		status = entity.UserStatusActive
	}
	if err := uc.repo.SetStatus(ctx, id, status, uc.now()); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserDTO(user), nil
}

func toUserDTO(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
