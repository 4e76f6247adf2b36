package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequest entrada para agregar un servicio al catálogo.
type CreateServiceRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
}

// UpdateServiceRequest actualización parcial; campos nil no cambian.
type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ServiceResponse salida de un servicio del catálogo.
type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
