package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
)

// ServiceUseCase catálogo de servicios de limpieza.
type ServiceUseCase struct {
	repo repository.CleaningServiceRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.CleaningServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

// Create agrega un servicio activo. El precio no puede ser negativo.
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	svc := &entity.CleaningService{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// Update aplica cambios parciales. Devuelve nil si el servicio no existe.
func (uc *ServiceUseCase) Update(ctx context.Context, id string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		svc.Name = name
	}
	if in.Description != nil {
		svc.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		svc.Price = *in.Price
	}
	if in.Active != nil {
		svc.Active = *in.Active
	}
	svc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// List lista el catálogo; onlyActive para el sitio público y el mostrador.
func (uc *ServiceUseCase) List(ctx context.Context, onlyActive bool) ([]dto.ServiceResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toServiceResponse(s))
	}
	return out, nil
}

func toServiceResponse(s *entity.CleaningService) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
