package entity

import "time"

// Estados de una reserva hecha desde el sitio público.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking solicitud de recogida/servicio creada por un visitante sin cuenta.
type Booking struct {
	ID         string
	Name       string
	Phone      string
	Email      string
	ServiceID  *string
	PickupDate time.Time
	Message    string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
