package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/vipcleaners/pos-api/internal/application/dto"
)

type bookingService interface {
	Create(ctx context.Context, in dto.CreateBookingRequest) (*dto.BookingResponse, error)
	List(ctx context.Context, status string, limit, offset int) ([]dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (*dto.BookingResponse, error)
}

// BookingHandler reservas: creación pública y gestión interna.
type BookingHandler struct {
	uc bookingService
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc bookingService) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Create godoc
// @Summary      Reservar recogida (público)
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "Datos de contacto y fecha"
// @Success      201   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/public/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.Phone == "" || in.PickupDate.IsZero() {
		return validation(c, "name, phone y pickup_date son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "servicio no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar reservas
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | confirmed | cancelled"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.BookingResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	page := pageParams(c)
	out, err := h.uc.List(c.UserContext(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Confirmar o cancelar reserva (solo admin)
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la reserva"
// @Param        body  body  dto.UpdateBookingStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.BookingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err, "reserva no encontrada")
	}
	return c.JSON(out)
}
