package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

func testList() *entity.SupplierList {
	return &entity.SupplierList{
		MinDiscount:         decimal.NewFromInt(5),
		MaxDiscount:         decimal.NewFromInt(25),
		MinReservationValue: decimal.NewFromInt(5000),
		MaxReservationValue: decimal.NewFromInt(30000),
	}
}

func TestDrop_AddReservation_AcumulaYRecalcula(t *testing.T) {
	drop := &entity.Drop{Status: entity.DropStatusOpen, CurrentValue: decimal.Zero, CurrentDiscount: decimal.NewFromInt(5)}
	list := testList()

	require.NoError(t, drop.AddReservation(decimal.NewFromInt(12500), list.Bounds()))
	assert.True(t, drop.CurrentValue.Equal(decimal.NewFromInt(12500)))
	assert.True(t, drop.CurrentDiscount.Equal(decimal.NewFromInt(11)))

	require.NoError(t, drop.AddReservation(decimal.NewFromInt(5000), list.Bounds()))
	assert.True(t, drop.CurrentValue.Equal(decimal.NewFromInt(17500)))
	assert.True(t, drop.CurrentDiscount.Equal(decimal.NewFromInt(15)))

	require.NoError(t, drop.AddReservation(decimal.NewFromInt(50000), list.Bounds()))
	assert.True(t, drop.CurrentDiscount.Equal(decimal.NewFromInt(25)), "el descuento no supera el máximo")
}

func TestDrop_AddReservation_RechazaMontoNoPositivo(t *testing.T) {
	drop := &entity.Drop{Status: entity.DropStatusOpen}
	err := drop.AddReservation(decimal.Zero, testList().Bounds())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, drop.CurrentValue.IsZero(), "no debe modificar el agregado")
}

func TestDrop_AddReservation_LimitesInvalidosNoModifican(t *testing.T) {
	drop := &entity.Drop{Status: entity.DropStatusOpen}
	list := testList()
	list.MaxReservationValue = list.MinReservationValue
	err := drop.AddReservation(decimal.NewFromInt(100), list.Bounds())
	assert.ErrorIs(t, err, domain.ErrInvalidBounds)
	assert.True(t, drop.CurrentValue.IsZero())
}

func TestDrop_AcceptsReservations(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	drop := &entity.Drop{
		Status:   entity.DropStatusOpen,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	}
	assert.True(t, drop.AcceptsReservations(now))
	assert.False(t, drop.AcceptsReservations(now.Add(2*time.Hour)), "fuera de ventana")
	assert.False(t, drop.AcceptsReservations(now.Add(-2*time.Hour)), "antes de iniciar")

	drop.Status = entity.DropStatusScheduled
	assert.False(t, drop.AcceptsReservations(now))
}

func TestDrop_Close(t *testing.T) {
	now := time.Now()
	drop := &entity.Drop{Status: entity.DropStatusOpen}
	require.NoError(t, drop.Close(now))
	assert.Equal(t, entity.DropStatusClosed, drop.Status)
	require.NotNil(t, drop.ClosedAt)

	assert.ErrorIs(t, drop.Close(now), domain.ErrDropClosed)

	scheduled := &entity.Drop{Status: entity.DropStatusScheduled}
	assert.ErrorIs(t, scheduled.Close(now), domain.ErrDropNotOpen)
}
