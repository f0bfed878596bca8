package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/DropZone-api/internal/application/drop"
	"github.com/jhoicas/DropZone-api/internal/application/dto"
)

// reservationService lo implementa *drop.ReserveUseCase.
type reservationService interface {
	Reserve(ctx context.Context, in drop.ReserveInput) (*dto.ReservationResponse, error)
	ListMine(ctx context.Context, userID string, page dto.PageRequest) (*dto.ReservationListResponse, error)
}

// receiptService lo implementa *drop.ReceiptUseCase.
type receiptService interface {
	Generate(ctx context.Context, actor dto.Actor, reservationID string) ([]byte, error)
}

// ReservationHandler reservas del cliente y comprobantes.
type ReservationHandler struct {
	reservations reservationService
	receipts     receiptService
}

// NewReservationHandler construye el handler.
func NewReservationHandler(reservations reservationService, receipts receiptService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, receipts: receipts}
}

// Reserve godoc
// @Summary      Reservar un producto del drop
// @Description  Retiene el pago con el descuento vigente; el cobro final se hace al cierre.
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del drop"
// @Param        body  body  dto.CreateReservationRequest  true  "Ítem y cantidad"
// @Success      201   {object}  dto.ReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/drops/{id}/reservations [post]
func (h *ReservationHandler) Reserve(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ItemID == "" || in.Quantity <= 0 {
		return badRequest(c, "VALIDATION", "item_id y quantity > 0 son requeridos")
	}
	out, err := h.reservations.Reserve(c.UserContext(), drop.ReserveInput{
		UserID:   GetUserID(c),
		DropID:   c.Params("id"),
		ItemID:   in.ItemID,
		Quantity: in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ReservationHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.reservations.ListMine(c.UserContext(), GetUserID(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una reserva liquidada
// @Tags         reservations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id}/receipt [get]
func (h *ReservationHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.receipts.Generate(c.UserContext(), ActorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="comprobante-%s.pdf"`, id))
	return c.Send(pdf)
}
