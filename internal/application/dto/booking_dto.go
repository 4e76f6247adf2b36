package dto

import "time"

// CreateBookingRequest reserva enviada desde el sitio público.
type CreateBookingRequest struct {
	Name       string    `json:"name" validate:"required,max=200"`
	Phone      string    `json:"phone" validate:"required"`
	Email      string    `json:"email" validate:"omitempty,email"`
	ServiceID  string    `json:"service_id" validate:"omitempty,uuid"`
	PickupDate time.Time `json:"pickup_date" validate:"required"`
	Message    string    `json:"message"`
}

// UpdateBookingStatusRequest confirma o cancela una reserva.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// BookingResponse salida de una reserva.
type BookingResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	ServiceID  *string   `json:"service_id,omitempty"`
	PickupDate time.Time `json:"pickup_date"`
	Message    string    `json:"message,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
