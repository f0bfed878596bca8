package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
)

// dropService operaciones de gestión y consulta de drops. Lo implementa *drop.DropUseCase.
type dropService interface {
	Create(ctx context.Context, actor dto.Actor, in dto.CreateDropRequest) (*dto.DropResponse, error)
	Open(ctx context.Context, actor dto.Actor, id string) (*dto.DropResponse, error)
	Get(ctx context.Context, id string) (*dto.DropDetailResponse, error)
	List(ctx context.Context, status string, page dto.PageRequest) (*dto.DropListResponse, error)
	ListReservations(ctx context.Context, actor dto.Actor, id string) ([]dto.ReservationResponse, error)
}

// dropSettler cierre, cancelación y reintento de cobros. Lo implementa *drop.CloseUseCase.
type dropSettler interface {
	CloseByActor(ctx context.Context, actor dto.Actor, id string) (*dto.DropSettlementResponse, error)
	Cancel(ctx context.Context, actor dto.Actor, id string) (*dto.DropResponse, error)
	RetryCharges(ctx context.Context, id string) (*dto.DropSettlementResponse, error)
}

// DropHandler maneja el ciclo de vida de los drops.
type DropHandler struct {
	drops   dropService
	settler dropSettler
}

// NewDropHandler construye el handler.
func NewDropHandler(drops dropService, settler dropSettler) *DropHandler {
	return &DropHandler{drops: drops, settler: settler}
}

// Create godoc
// @Summary      Crear drop sobre una lista de proveedor
// @Tags         drops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDropRequest  true  "Lista, punto de retiro y ventana"
// @Success      201   {object}  dto.DropResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/drops [post]
func (h *DropHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDropRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SupplierListID == "" || in.PickupPointID == "" {
		return badRequest(c, "VALIDATION", "supplier_list_id y pickup_point_id son requeridos")
	}
	out, err := h.drops.Create(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Detalle del drop con progreso de descuento
// @Tags         drops
// @Produce      json
// @Param        id   path  string  true  "ID del drop"
// @Success      200  {object}  dto.DropDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drops/{id} [get]
func (h *DropHandler) Get(c *fiber.Ctx) error {
	out, err := h.drops.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "drop no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar drops
// @Tags         drops
// @Produce      json
// @Param        status  query  string  false  "scheduled | open | closed | cancelled"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.DropListResponse
// @Router       /api/drops [get]
func (h *DropHandler) List(c *fiber.Ctx) error {
	out, err := h.drops.List(c.UserContext(), c.Query("status"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *DropHandler) Open(c *fiber.Ctx) error {
	out, err := h.drops.Open(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar drop y cobrar
// @Description  Fija el descuento final, lo aplica a todas las reservas y captura los pagos.
// @Tags         drops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del drop"
// @Success      200  {object}  dto.DropSettlementResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/drops/{id}/close [post]
func (h *DropHandler) Close(c *fiber.Ctx) error {
	out, err := h.settler.CloseByActor(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *DropHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.settler.Cancel(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RetryCharges reintenta las capturas fallidas de un drop cerrado (admin).
func (h *DropHandler) RetryCharges(c *fiber.Ctx) error {
	out, err := h.settler.RetryCharges(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *DropHandler) ListReservations(c *fiber.Ctx) error {
	out, err := h.drops.ListReservations(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
