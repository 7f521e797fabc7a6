package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/config"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

type saleFixture struct {
	sales     *stubSaleRepo
	products  *stubProductRepo
	movements *stubMovementRepo
	svc       SaleService
	charger   *model.Product
	cable     *model.Product
}

func newSaleFixture(t *testing.T, ledger bool) *saleFixture {
	t.Helper()
	charger := &model.Product{
		Name: "Cargador USB-C", SKU: "CHG-001",
		Quantity: 10, MinStock: 2,
		UnitPrice: d("60"), SalePrice: d("100"), Active: true,
	}
	cable := &model.Product{
		Name: "Cable Lightning", SKU: "CAB-002",
		Quantity: 5, MinStock: 1,
		UnitPrice: d("30"), SalePrice: d("50"), Active: true,
	}
	sales := newStubSaleRepo()
	products := newStubProductRepo(charger, cable)
	movements := &stubMovementRepo{}
	cfg := &config.Config{SaleLedgerMovements: ledger}
	inventory := NewInventoryService(products, movements, zerolog.Nop())
	svc := NewSaleService(sales, products, newStubCustomerRepo(), inventory, cfg, zerolog.Nop())
	return &saleFixture{sales: sales, products: products, movements: movements, svc: svc, charger: charger, cable: cable}
}

func TestSaleCreateCash(t *testing.T) {
	f := newSaleFixture(t, true)

	resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Discount:      d("20"),
		Items: []dto.SaleItemRequest{
			{ProductID: f.charger.ID.String(), Quantity: 2},
			{ProductID: f.cable.ID.String(), Quantity: 1},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "VTA-000001", resp.SaleNumber)
	assert.True(t, d("250").Equal(resp.Subtotal), "subtotal %s", resp.Subtotal)
	assert.True(t, d("230").Equal(resp.Total), "total %s", resp.Total)
	// Cash settles in full at the counter.
	assert.Equal(t, model.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, d("230").Equal(resp.PaidAmount))
	assert.True(t, resp.Balance.IsZero())
	assert.Equal(t, "Cliente Anonimo", resp.CustomerDisplay)

	// Stock went down and the ledger recorded both deductions.
	assert.Equal(t, 8, f.charger.Quantity)
	assert.Equal(t, 4, f.cable.Quantity)
	require.Len(t, f.movements.movements, 2)
	for _, m := range f.movements.movements {
		assert.Equal(t, model.MovementOut, m.MovementType)
		assert.Equal(t, "Venta VTA-000001", m.Reason)
	}
}

func TestSaleCreateCapturesPriceAtSaleTime(t *testing.T) {
	f := newSaleFixture(t, true)

	resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: model.PaymentCard,
		Items:         []dto.SaleItemRequest{{ProductID: f.charger.ID.String(), Quantity: 1}},
	}, nil)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, d("100").Equal(resp.Items[0].UnitPrice))

	// A later price change must not touch the recorded sale.
	f.charger.SalePrice = d("999")
	stored, err := f.svc.Get(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.True(t, d("100").Equal(stored.Items[0].UnitPrice))
}

func TestSaleCreateNegotiatedUnitPrice(t *testing.T) {
	f := newSaleFixture(t, true)

	negotiated := d("80")
	resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: f.charger.ID.String(), Quantity: 2, UnitPrice: &negotiated},
			{ProductID: f.cable.ID.String(), Quantity: 1},
		},
	}, nil)
	require.NoError(t, err)

	// 2×80 negotiated + 1×50 list.
	assert.True(t, d("210").Equal(resp.Total), "total %s", resp.Total)
	require.Len(t, resp.Items, 2)
	assert.True(t, d("80").Equal(resp.Items[0].UnitPrice))
	assert.True(t, d("50").Equal(resp.Items[1].UnitPrice))
}

func TestSaleCreateAccountPartial(t *testing.T) {
	f := newSaleFixture(t, true)

	resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: model.PaymentAccount,
		PaidAmount:    d("100"),
		Items: []dto.SaleItemRequest{
			{ProductID: f.charger.ID.String(), Quantity: 2},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPartial, resp.PaymentStatus)
	assert.True(t, d("100").Equal(resp.PaidAmount))
	assert.True(t, d("100").Equal(resp.Balance))
}

func TestSaleCreateInsufficientStock(t *testing.T) {
	f := newSaleFixture(t, true)

	_, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: f.cable.ID.String(), Quantity: 6}},
	}, nil)

	var stockErr *apierror.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Empty(t, f.sales.sales)
}

func TestSaleCreateEmptyCart(t *testing.T) {
	f := newSaleFixture(t, true)

	_, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
	}, nil)

	var opErr *apierror.InvalidOperationError
	require.ErrorAs(t, err, &opErr)
}

func TestSaleCreateDiscountExceedsSubtotal(t *testing.T) {
	f := newSaleFixture(t, true)

	_, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Discount:      d("101"),
		Items:         []dto.SaleItemRequest{{ProductID: f.charger.ID.String(), Quantity: 1}},
	}, nil)

	var opErr *apierror.InvalidOperationError
	require.ErrorAs(t, err, &opErr)
}

func TestSaleCreateWithoutLedgerFlag(t *testing.T) {
	f := newSaleFixture(t, false)

	_, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: model.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: f.charger.ID.String(), Quantity: 3}},
	}, nil)
	require.NoError(t, err)

	// Legacy mode: quantity drops but no ledger entry is written.
	assert.Equal(t, 7, f.charger.Quantity)
	assert.Empty(t, f.movements.movements)
}

func TestSaleCreateSequentialNumbers(t *testing.T) {
	f := newSaleFixture(t, true)

	for i, want := range []string{"VTA-000001", "VTA-000002", "VTA-000003"} {
		resp, err := f.svc.Create(context.Background(), dto.CreateSaleRequest{
			PaymentMethod: model.PaymentCash,
			Items:         []dto.SaleItemRequest{{ProductID: f.charger.ID.String(), Quantity: 1}},
		}, nil)
		require.NoError(t, err, "sale %d", i)
		assert.Equal(t, want, resp.SaleNumber)
	}
}
