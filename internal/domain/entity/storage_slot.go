package entity

import "time"

// StorageSlot asigna un ítem de orden (un par de zapatos) a una caja/estante de la bodega.
// Se crea al recibir el ítem (sin código); el código se asigna antes o durante el proceso.
// Cuando la orden pasa a Delivered el registro deja de contar para ocupación, no se borra.
type StorageSlot struct {
	ItemID       string
	OrderID      string
	Box          string
	LocationCode *string // nil hasta que se asigna
	SpecialNotes string
	AssignedBy   *string
	AssignedAt   *time.Time
	CreatedAt    time.Time

	// OrderStatus se llena al leer (join con orders); no se persiste en el slot.
	OrderStatus OrderStatus
}

// HasCode indica si el slot ya tiene código de ubicación asignado.
func (s *StorageSlot) HasCode() bool {
	return s.LocationCode != nil && *s.LocationCode != ""
}

// SlotOccupant describe quién ocupa un código activo (para mensajes de validación y listados).
type SlotOccupant struct {
	ItemID            string
	OrderID           string
	OrderReference    string
	OrderStatus       OrderStatus
	ClientDisplayName string
	LocationCode      string
	Box               string
}
