package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/application/usecase"
)

// SupplierListHandler listas de precios de proveedor con su calibración de descuento.
type SupplierListHandler struct {
	uc *usecase.SupplierListUseCase
}

func NewSupplierListHandler(uc *usecase.SupplierListUseCase) *SupplierListHandler {
	return &SupplierListHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lista de proveedor
// @Description  min_discount < max_discount y min_reservation_value < max_reservation_value.
// @Tags         supplier-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierListRequest  true  "Nombre y límites de descuento"
// @Success      201   {object}  dto.SupplierListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/supplier-lists [post]
func (h *SupplierListHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierListRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *SupplierListHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "lista no encontrada")
	}
	return c.JSON(out)
}

func (h *SupplierListHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListBySupplier(c.UserContext(), ActorFrom(c), c.Query("supplier_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto a la lista
// @Tags         supplier-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la lista"
// @Param        body  body  dto.AddListItemRequest   true  "Producto y precio base"
// @Success      201   {object}  dto.SupplierListItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-lists/{id}/items [post]
func (h *SupplierListHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddListItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AddItem(c.UserContext(), ActorFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
