package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	"github.com/vipcleaners/pos-api/internal/application/ports"
	"github.com/vipcleaners/pos-api/internal/application/usecase"
	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
)

type memClients struct {
	byID map[string]*entity.Client
}

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return m.byID[id], nil
}

func (m *memClients) GetByPhone(_ context.Context, phone string) (*entity.Client, error) {
	for _, c := range m.byID {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memClients) List(_ context.Context, _ string, _, _ int) ([]*entity.Client, int, error) {
	var out []*entity.Client
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

type memServices struct {
	byID map[string]*entity.CleaningService
}

func (m *memServices) Create(_ context.Context, s *entity.CleaningService) error {
	m.byID[s.ID] = s
	return nil
}

func (m *memServices) GetByID(_ context.Context, id string) (*entity.CleaningService, error) {
	return m.byID[id], nil
}

func (m *memServices) Update(_ context.Context, s *entity.CleaningService) error {
	m.byID[s.ID] = s
	return nil
}

func (m *memServices) List(_ context.Context, onlyActive bool) ([]*entity.CleaningService, error) {
	var out []*entity.CleaningService
	for _, s := range m.byID {
		if !onlyActive || s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

type memBookings struct {
	byID map[string]*entity.Booking
}

func (m *memBookings) Create(_ context.Context, b *entity.Booking) error {
	m.byID[b.ID] = b
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	return m.byID[id], nil
}

func (m *memBookings) List(_ context.Context, status string, _, _ int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range m.byID {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) Update(_ context.Context, b *entity.Booking) error {
	m.byID[b.ID] = b
	return nil
}

type bookingNotifier struct {
	events []ports.BookingCreatedEvent
	err    error
}

func (n *bookingNotifier) OrderStatusChanged(context.Context, ports.OrderStatusEvent) error { return nil }

func (n *bookingNotifier) BookingCreated(_ context.Context, evt ports.BookingCreatedEvent) error {
	n.events = append(n.events, evt)
	return n.err
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  maría   josé  pérez ", "María José Pérez"},
		{"ÁNGEL DE LA HOZ", "Ángel De La Hoz"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.DisplayName(tt.in))
		})
	}
}

func TestClientUseCase_Create(t *testing.T) {
	repo := &memClients{byID: map[string]*entity.Client{}}
	uc := usecase.NewClientUseCase(repo)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateClientRequest{Name: "ana ruiz", Phone: " 3001234567 "})
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", out.DisplayName)
	assert.Equal(t, "3001234567", out.Phone)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Otra", Phone: "3001234567"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: " ", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)

	missing, err := uc.GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := uc.List(ctx, "ana", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

func TestServiceUseCase_PrecioNoNegativo(t *testing.T) {
	repo := &memServices{byID: map[string]*entity.CleaningService{}}
	uc := usecase.NewServiceUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateServiceRequest{Name: "Básica", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	svc, err := uc.Create(ctx, dto.CreateServiceRequest{Name: "Básica", Price: decimal.RequireFromString("25000")})
	require.NoError(t, err)
	assert.True(t, svc.Active)

	neg := decimal.NewFromInt(-5)
	_, err = uc.Update(ctx, svc.ID, dto.UpdateServiceRequest{Price: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inactive := false
	updated, err := uc.Update(ctx, svc.ID, dto.UpdateServiceRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	missing, err := uc.Update(ctx, "nope", dto.UpdateServiceRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBookingUseCase_CreaYNotifica(t *testing.T) {
	services := &memServices{byID: map[string]*entity.CleaningService{
		"s1": {ID: "s1", Name: "Premium", Active: true},
	}}
	bookings := &memBookings{byID: map[string]*entity.Booking{}}
	n := &bookingNotifier{err: errors.New("sin broker")}
	uc := usecase.NewBookingUseCase(bookings, services, n, nil)
	ctx := context.Background()
	pickup := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	out, err := uc.Create(ctx, dto.CreateBookingRequest{Name: "Luis", Phone: "300", ServiceID: "s1", PickupDate: pickup})
	require.NoError(t, err, "un fallo del broker no impide guardar la reserva")
	assert.Equal(t, entity.BookingStatusPending, out.Status)
	require.Len(t, n.events, 1)
	assert.Equal(t, out.ID, n.events[0].BookingID)

	_, err = uc.Create(ctx, dto.CreateBookingRequest{Name: "Luis", Phone: "300", ServiceID: "zz", PickupDate: pickup})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.CreateBookingRequest{Name: "Luis", Phone: "300"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBookingUseCase_UpdateStatus(t *testing.T) {
	bookings := &memBookings{byID: map[string]*entity.Booking{
		"b1": {ID: "b1", Status: entity.BookingStatusPending},
	}}
	uc := usecase.NewBookingUseCase(bookings, &memServices{byID: map[string]*entity.CleaningService{}}, nil, nil)
	ctx := context.Background()

	out, err := uc.UpdateStatus(ctx, "b1", entity.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, out.Status)

	_, err = uc.UpdateStatus(ctx, "b1", entity.BookingStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(ctx, "b1", "archivada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStatus(ctx, "zz", entity.BookingStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, entity.BookingStatusCancelled, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
