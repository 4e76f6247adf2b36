package entity

import "time"

// Client representa un cliente de VIP Cleaners.
type Client struct {
	ID          string
	Name        string
	DisplayName string // nombre normalizado para mostrar en etiquetas y mensajes
	Phone       string
	Email       string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
