package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	appstorage "github.com/vipcleaners/pos-api/internal/application/storage"
)

// storageService es lo que el handler necesita de *storage.Service.
type storageService interface {
	Generate(ctx context.Context, box string) dto.GenerateCodeResponse
	Validate(ctx context.Context, code string) dto.ValidateCodeResponse
	ListByBox(ctx context.Context, box string) (*dto.BoxLocationsResponse, error)
	Assign(ctx context.Context, in appstorage.AssignInput) (*dto.StorageSlotResponse, error)
	GetSlot(ctx context.Context, itemID string) (*dto.StorageSlotResponse, error)
}

// labelService lo implementa *storage.LabelUseCase.
type labelService interface {
	BoxLabels(ctx context.Context, box string) ([]byte, string, error)
}

// StorageHandler códigos de ubicación: generar, validar, listar por caja, asignar y etiquetas.
type StorageHandler struct {
	svc    storageService
	labels labelService
}

// NewStorageHandler construye el handler.
func NewStorageHandler(svc storageService, labels labelService) *StorageHandler {
	return &StorageHandler{svc: svc, labels: labels}
}

// GenerateCode godoc
// @Summary      Generar código de ubicación
// @Description  Propone el siguiente código libre para la caja. Nunca falla: degrada a generación manual y a EST-AUTO-xxxxxx.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateCodeRequest  true  "Caja (ej. A1)"
// @Success      200   {object}  dto.GenerateCodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/storage/generate-code [post]
func (h *StorageHandler) GenerateCode(c *fiber.Ctx) error {
	var in dto.GenerateCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Box) == "" {
		return validation(c, "box es requerido")
	}
	return c.JSON(h.svc.Generate(c.UserContext(), in.Box))
}

// ValidateCode godoc
// @Summary      Validar código de ubicación
// @Description  Revisa formato y disponibilidad entre órdenes no entregadas. Siempre responde 200 con el veredicto.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateCodeRequest  true  "Código"
// @Success      200   {object}  dto.ValidateCodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/storage/validate-code [post]
func (h *StorageHandler) ValidateCode(c *fiber.Ctx) error {
	var in dto.ValidateCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Code) == "" {
		return validation(c, "code es requerido")
	}
	return c.JSON(h.svc.Validate(c.UserContext(), in.Code))
}

// ListLocations godoc
// @Summary      Códigos en uso de una caja
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        box  query  string  true  "Caja (ej. A1)"
// @Success      200  {object}  dto.BoxLocationsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/storage/locations [get]
func (h *StorageHandler) ListLocations(c *fiber.Ctx) error {
	box := strings.TrimSpace(c.Query("box"))
	if box == "" {
		return validation(c, "box es requerido")
	}
	out, err := h.svc.ListByBox(c.UserContext(), box)
	if err != nil {
		return writeError(c, err, "caja no encontrada")
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar ubicación a un ítem
// @Description  Sin code se genera dentro del bloqueo de la caja; con code se valida y debe estar libre.
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string                     true  "ID del ítem"
// @Param        body    body  dto.AssignLocationRequest  true  "Caja, código opcional y notas"
// @Success      200     {object}  dto.StorageSlotResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/storage/items/{itemId}/location [put]
func (h *StorageHandler) Assign(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "itemId es requerido"})
	}
	var in dto.AssignLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Box) == "" {
		return validation(c, "box es requerido")
	}
	out, err := h.svc.Assign(c.UserContext(), appstorage.AssignInput{
		ItemID:       itemID,
		Box:          in.Box,
		Code:         in.Code,
		SpecialNotes: in.SpecialNotes,
		EmployeeID:   GetUserID(c),
	})
	if err != nil {
		return writeError(c, err, "ítem no encontrado")
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Ubicación de un ítem
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del ítem"
// @Success      200     {object}  dto.StorageSlotResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/storage/items/{itemId} [get]
func (h *StorageHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.svc.GetSlot(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return writeError(c, err, "ítem no encontrado")
	}
	return c.JSON(out)
}

// Labels godoc
// @Summary      Etiquetas imprimibles de una caja
// @Tags         storage
// @Security     Bearer
// @Produce      application/pdf
// @Param        box  query  string  true  "Caja (ej. A1)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage/labels [get]
func (h *StorageHandler) Labels(c *fiber.Ctx) error {
	box := strings.TrimSpace(c.Query("box"))
	if box == "" {
		return validation(c, "box es requerido")
	}
	pdf, filename, err := h.labels.BoxLabels(c.UserContext(), box)
	if err != nil {
		return writeError(c, err, "la caja no tiene códigos activos")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}
