package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

// PickupPointUseCase casos de uso CRUD para puntos de retiro.
type PickupPointUseCase struct {
	repo repository.PickupPointRepository
}

// NewPickupPointUseCase construye el caso de uso.
func NewPickupPointUseCase(repo repository.PickupPointRepository) *PickupPointUseCase {
	return &PickupPointUseCase{repo: repo}
}

// Create crea un nuevo punto de retiro, activo por defecto.
func (uc *PickupPointUseCase) Create(ctx context.Context, in dto.CreatePickupPointRequest) (*dto.PickupPointResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	point := &entity.PickupPoint{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, point); err != nil {
		return nil, err
	}
	return toPickupPointResponse(point), nil
}

// GetByID obtiene un punto de retiro por ID.
func (uc *PickupPointUseCase) GetByID(ctx context.Context, id string) (*dto.PickupPointResponse, error) {
	point, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, nil
	}
	return toPickupPointResponse(point), nil
}

// Update actualiza un punto de retiro. Desactivarlo impide crear drops nuevos sobre él.
func (uc *PickupPointUseCase) Update(ctx context.Context, id string, in dto.UpdatePickupPointRequest) (*dto.PickupPointResponse, error) {
	point, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, nil
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		point.Name = *in.Name
	}
	if in.Address != nil {
		point.Address = *in.Address
	}
	if in.City != nil {
		point.City = *in.City
	}
	if in.Phone != nil {
		point.Phone = *in.Phone
	}
	if in.Active != nil {
		point.Active = *in.Active
	}
	point.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, point); err != nil {
		return nil, err
	}
	return toPickupPointResponse(point), nil
}

// List lista puntos de retiro; onlyActive filtra los inactivos (vista pública).
func (uc *PickupPointUseCase) List(ctx context.Context, onlyActive bool) ([]dto.PickupPointResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PickupPointResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPickupPointResponse(p))
	}
	return out, nil
}

func toPickupPointResponse(p *entity.PickupPoint) *dto.PickupPointResponse {
	if p == nil {
		return nil
	}
	return &dto.PickupPointResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		City:      p.City,
		Phone:     p.Phone,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
