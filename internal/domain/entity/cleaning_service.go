package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CleaningService servicio del catálogo (limpieza básica, premium, restauración...).
type CleaningService struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
