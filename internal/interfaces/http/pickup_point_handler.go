package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/application/usecase"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

// PickupPointHandler puntos de retiro: lectura pública, alta y edición solo admin.
type PickupPointHandler struct {
	uc *usecase.PickupPointUseCase
}

func NewPickupPointHandler(uc *usecase.PickupPointUseCase) *PickupPointHandler {
	return &PickupPointHandler{uc: uc}
}

func (h *PickupPointHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePickupPointRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PickupPointHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "punto de retiro no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar puntos de retiro activos
// @Tags         pickup-points
// @Produce      json
// @Success      200  {array}  dto.PickupPointResponse
// @Router       /api/pickup-points [get]
func (h *PickupPointHandler) List(c *fiber.Ctx) error {
	// ?all=true incluye inactivos, solo para admin
	onlyActive := !(GetRole(c) == entity.RoleAdmin && c.QueryBool("all", false))
	out, err := h.uc.List(c.UserContext(), onlyActive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *PickupPointHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePickupPointRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "punto de retiro no encontrado")
	}
	return c.JSON(out)
}
