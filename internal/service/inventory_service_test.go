package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

func newInventoryFixture(quantity int) (*stubProductRepo, *stubMovementRepo, InventoryService, *model.Product) {
	p := &model.Product{
		Name:      "Cargador USB-C",
		SKU:       "CHG-001",
		Quantity:  quantity,
		MinStock:  2,
		UnitPrice: d("1000"),
		SalePrice: d("1500"),
		Active:    true,
	}
	products := newStubProductRepo(p)
	movements := &stubMovementRepo{}
	svc := NewInventoryService(products, movements, zerolog.Nop())
	return products, movements, svc, p
}

func TestApplyMovementIn(t *testing.T) {
	_, movements, svc, p := newInventoryFixture(10)

	resp, err := svc.ApplyMovement(context.Background(), p.ID, dto.ApplyMovementRequest{
		MovementType: model.MovementIn,
		Quantity:     5,
		Reason:       "Compra proveedor",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, resp.PreviousQuantity)
	assert.Equal(t, 15, resp.NewQuantity)
	assert.Equal(t, 15, p.Quantity)
	require.Len(t, movements.movements, 1)
	assert.Equal(t, model.MovementIn, movements.movements[0].MovementType)
}

func TestApplyMovementOut(t *testing.T) {
	_, movements, svc, p := newInventoryFixture(10)

	resp, err := svc.ApplyMovement(context.Background(), p.ID, dto.ApplyMovementRequest{
		MovementType: model.MovementOut,
		Quantity:     4,
		Reason:       "Rotura",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 6, resp.NewQuantity)
	assert.Equal(t, 6, p.Quantity)
	require.Len(t, movements.movements, 1)
}

func TestApplyMovementOutInsufficientStock(t *testing.T) {
	_, movements, svc, p := newInventoryFixture(10)

	_, err := svc.ApplyMovement(context.Background(), p.ID, dto.ApplyMovementRequest{
		MovementType: model.MovementOut,
		Quantity:     11,
		Reason:       "Venta mostrador",
	}, nil)

	var stockErr *apierror.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, stockErr.Available)
	assert.Equal(t, 11, stockErr.Requested)
	// Nothing changed, nothing logged.
	assert.Equal(t, 10, p.Quantity)
	assert.Empty(t, movements.movements)
}

func TestApplyMovementOutExactStock(t *testing.T) {
	_, _, svc, p := newInventoryFixture(10)

	resp, err := svc.ApplyMovement(context.Background(), p.ID, dto.ApplyMovementRequest{
		MovementType: model.MovementOut,
		Quantity:     10,
		Reason:       "Liquidacion",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.NewQuantity)
	assert.Equal(t, 0, p.Quantity)
}

func TestApplyMovementAdjustmentIsAbsolute(t *testing.T) {
	_, movements, svc, p := newInventoryFixture(10)

	resp, err := svc.ApplyMovement(context.Background(), p.ID, dto.ApplyMovementRequest{
		MovementType: model.MovementAdjustment,
		Quantity:     3,
		Reason:       "Conteo fisico",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, resp.PreviousQuantity)
	assert.Equal(t, 3, resp.NewQuantity)
	assert.Equal(t, 3, p.Quantity)
	require.Len(t, movements.movements, 1)
	assert.Equal(t, model.MovementAdjustment, movements.movements[0].MovementType)
}

func TestApplyMovementInvalidType(t *testing.T) {
	_, _, svc, p := newInventoryFixture(10)

	_, err := svc.ApplyMovement(context.Background(), p.ID, dto.ApplyMovementRequest{
		MovementType: "transfer",
		Quantity:     1,
		Reason:       "x",
	}, nil)

	var statusErr *apierror.InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
}

func TestApplyMovementUnknownProduct(t *testing.T) {
	_, _, svc, _ := newInventoryFixture(10)

	_, err := svc.ApplyMovement(context.Background(), uuid.New(), dto.ApplyMovementRequest{
		MovementType: model.MovementIn,
		Quantity:     1,
		Reason:       "x",
	}, nil)

	var notFound *apierror.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
