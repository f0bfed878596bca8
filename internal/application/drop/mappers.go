package drop

import (
	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

func toDropResponse(d *entity.Drop) dto.DropResponse {
	return dto.DropResponse{
		ID:              d.ID,
		SupplierListID:  d.SupplierListID,
		PickupPointID:   d.PickupPointID,
		Name:            d.Name,
		Status:          d.Status,
		StartsAt:        d.StartsAt,
		EndsAt:          d.EndsAt,
		CurrentValue:    d.CurrentValue,
		CurrentDiscount: d.CurrentDiscount,
		ClosedAt:        d.ClosedAt,
	}
}

func toReservationResponse(r *entity.Reservation) dto.ReservationResponse {
	out := dto.ReservationResponse{
		ID:             r.ID,
		DropID:         r.DropID,
		UserID:         r.UserID,
		ItemID:         r.ListItemID,
		ProductID:      r.ProductID,
		Quantity:       r.Quantity,
		UnitPrice:      r.UnitPrice,
		Subtotal:       r.Subtotal,
		BookedDiscount: r.BookedDiscount,
		HoldAmount:     r.HoldAmount,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}
	if r.FinalDiscount.Valid {
		v := r.FinalDiscount.Decimal
		out.FinalDiscount = &v
	}
	if r.FinalAmount.Valid {
		v := r.FinalAmount.Decimal
		out.FinalAmount = &v
	}
	return out
}

// canManage indica si el actor puede administrar recursos del proveedor supplierID.
func canManage(actor dto.Actor, supplierID string) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleSupplier:
		return actor.SupplierID != "" && actor.SupplierID == supplierID
	}
	return false
}
