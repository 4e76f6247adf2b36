package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	"github.com/vipcleaners/pos-api/internal/application/ports"
	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
	"github.com/vipcleaners/pos-api/pkg/logger"
)

// BookingUseCase reservas del sitio público.
type BookingUseCase struct {
	repo        repository.BookingRepository
	serviceRepo repository.CleaningServiceRepository
	notifier    ports.Notifier
	log         *logger.Logger
}

// NewBookingUseCase construye el caso de uso. notifier puede ser nil.
func NewBookingUseCase(repo repository.BookingRepository, serviceRepo repository.CleaningServiceRepository, notifier ports.Notifier, log *logger.Logger) *BookingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BookingUseCase{repo: repo, serviceRepo: serviceRepo, notifier: notifier, log: log}
}

// Create registra una reserva pendiente y avisa al local.
func (uc *BookingUseCase) Create(ctx context.Context, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" || in.PickupDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	booking := &entity.Booking{
		ID:         uuid.New().String(),
		Name:       name,
		Phone:      phone,
		Email:      strings.TrimSpace(in.Email),
		PickupDate: in.PickupDate,
		Message:    strings.TrimSpace(in.Message),
		Status:     entity.BookingStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.ServiceID != "" {
		svc, err := uc.serviceRepo.GetByID(ctx, in.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil || !svc.Active {
			return nil, domain.ErrNotFound
		}
		booking.ServiceID = &svc.ID
	}
	if err := uc.repo.Create(ctx, booking); err != nil {
		return nil, err
	}
	uc.log.Info().Str("booking_id", booking.ID).Msg("reserva recibida")
	if uc.notifier != nil {
		err := uc.notifier.BookingCreated(ctx, ports.BookingCreatedEvent{
			BookingID:  booking.ID,
			Name:       booking.Name,
			Phone:      booking.Phone,
			PickupDate: booking.PickupDate,
			CreatedAt:  booking.CreatedAt,
		})
		if err != nil {
			uc.log.Warn().Err(err).Str("booking_id", booking.ID).Msg("no se pudo publicar la reserva")
		}
	}
	return toBookingResponse(booking), nil
}

// List lista reservas; status vacío = todas.
func (uc *BookingUseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.BookingResponse, error) {
	if status != "" && !validBookingStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBookingResponse(b))
	}
	return out, nil
}

// UpdateStatus confirma o cancela. Una reserva cancelada no se reabre.
func (uc *BookingUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.BookingResponse, error) {
	if !validBookingStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	booking, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	if booking.Status == entity.BookingStatusCancelled && status != entity.BookingStatusCancelled {
		return nil, domain.ErrInvalidTransition
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return toBookingResponse(booking), nil
}

func validBookingStatus(s string) bool {
	switch s {
	case entity.BookingStatusPending, entity.BookingStatusConfirmed, entity.BookingStatusCancelled:
		return true
	}
	return false
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:         b.ID,
		Name:       b.Name,
		Phone:      b.Phone,
		Email:      b.Email,
		ServiceID:  b.ServiceID,
		PickupDate: b.PickupDate,
		Message:    b.Message,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
