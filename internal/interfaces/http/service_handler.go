package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/vipcleaners/pos-api/internal/application/dto"
)

type catalogService interface {
	Create(ctx context.Context, in dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	List(ctx context.Context, onlyActive bool) ([]dto.ServiceResponse, error)
}

// ServiceHandler catálogo de servicios de limpieza.
type ServiceHandler struct {
	uc catalogService
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc catalogService) *ServiceHandler {
	return &ServiceHandler{uc: uc}
}

// Create godoc
// @Summary      Agregar servicio (solo admin)
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequest  true  "Nombre, descripción y precio"
// @Success      201   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar servicio (solo admin)
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del servicio"
// @Param        body  body  dto.UpdateServiceRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ServiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services/{id} [put]
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "servicio no encontrado")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "servicio no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Catálogo de servicios
// @Description  Público; solo servicios activos salvo all=true con sesión de admin.
// @Tags         services
// @Produce      json
// @Param        all  query  bool  false  "Incluir inactivos"
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	onlyActive := !(c.QueryBool("all", false) && GetRole(c) == "admin")
	out, err := h.uc.List(c.UserContext(), onlyActive)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
