package usecase

import (
	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

// supplierScope resuelve sobre qué proveedor actúa el actor.
// Un proveedor solo opera sobre el suyo; el admin debe indicarlo explícitamente.
func supplierScope(actor dto.Actor, requested string) (string, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		if requested == "" {
			return "", domain.ErrInvalidInput
		}
		return requested, nil
	case entity.RoleSupplier:
		if actor.SupplierID == "" {
			return "", domain.ErrForbidden
		}
		if requested != "" && requested != actor.SupplierID {
			return "", domain.ErrForbidden
		}
		return actor.SupplierID, nil
	}
	return "", domain.ErrForbidden
}
