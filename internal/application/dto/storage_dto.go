package dto

import "time"

// GenerateCodeRequest entrada para generar el siguiente código de una caja.
type GenerateCodeRequest struct {
	Box string `json:"box" validate:"required"`
}

// GenerateCodeResponse código propuesto y cómo se obtuvo.
type GenerateCodeResponse struct {
	Code string `json:"code"`
	Box  string `json:"box"`
	Mode string `json:"mode"` // automatic | manual | manual_fallback
}

// ValidateCodeRequest entrada para validar un código de ubicación.
type ValidateCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// ValidateCodeResponse veredicto de formato y disponibilidad.
type ValidateCodeResponse struct {
	Valid       bool     `json:"valid"`
	Available   bool     `json:"available"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// LocationCodeUsage un código activo de la caja con sus ocupantes.
type LocationCodeUsage struct {
	LocationCode    string   `json:"location_code"`
	OccupantCount   int      `json:"occupant_count"`
	OrderReferences []string `json:"order_references"`
}

// BoxLocationsResponse códigos en uso de una caja y el siguiente sugerido.
type BoxLocationsResponse struct {
	Box               string              `json:"box"`
	ExistingCodes     []LocationCodeUsage `json:"existing_codes"`
	OccupiedCount     int                 `json:"occupied_count"`
	SuggestedNextCode string              `json:"suggested_next_code"`
}

// AssignLocationRequest asigna caja y código a un ítem. Code vacío = generar automáticamente.
type AssignLocationRequest struct {
	Box          string `json:"box" validate:"required"`
	Code         string `json:"code"`
	SpecialNotes string `json:"special_notes"`
}

// StorageSlotResponse salida de un slot de almacenamiento.
type StorageSlotResponse struct {
	ItemID       string     `json:"item_id"`
	OrderID      string     `json:"order_id"`
	Box          string     `json:"box"`
	LocationCode *string    `json:"location_code"`
	SpecialNotes string     `json:"special_notes,omitempty"`
	AssignedBy   *string    `json:"assigned_by,omitempty"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	Mode         string     `json:"mode,omitempty"`
}
