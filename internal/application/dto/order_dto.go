package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest un par de zapatos dentro de la orden.
type CreateOrderItemRequest struct {
	ServiceID    string `json:"service_id" validate:"required,uuid"`
	Description  string `json:"description"`
	Box          string `json:"box"`
	SpecialNotes string `json:"special_notes"`
}

// CreateOrderRequest entrada para crear una orden.
type CreateOrderRequest struct {
	ClientID string                   `json:"client_id" validate:"required,uuid"`
	Items    []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes    string                   `json:"notes"`
}

// ChangeOrderStatusRequest entrada para avanzar el estado de una orden.
type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse ítem con su ubicación actual.
type OrderItemResponse struct {
	ID          string               `json:"id"`
	ServiceID   string               `json:"service_id"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	Location    *StorageSlotResponse `json:"location,omitempty"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          string              `json:"id"`
	Reference   string              `json:"reference"`
	ClientID    string              `json:"client_id"`
	Status      string              `json:"status"`
	Total       decimal.Decimal     `json:"total"`
	Notes       string              `json:"notes,omitempty"`
	CreatedBy   string              `json:"created_by"`
	DeliveredAt *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Items       []OrderItemResponse `json:"items,omitempty"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
