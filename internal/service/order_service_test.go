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

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) OrderStatusChanged(_ context.Context, _ uuid.UUID, status string) {
	n.events = append(n.events, status)
}

type orderFixture struct {
	orders   *stubOrderRepo
	notifier *recordingNotifier
	svc      OrderService
	customer *model.Customer
}

func newOrderFixture(t *testing.T, policy TransitionPolicy) *orderFixture {
	t.Helper()
	customer := &model.Customer{DNI: "30111222", FirstName: "Maria", LastName: "Gomez", Phone: "3511234567"}
	orders := newStubOrderRepo()
	notifier := &recordingNotifier{}
	svc := NewOrderService(orders, newStubCustomerRepo(customer), &config.Config{}, notifier, policy, zerolog.Nop())
	return &orderFixture{orders: orders, notifier: notifier, svc: svc, customer: customer}
}

func (f *orderFixture) createOrder(t *testing.T, mutate func(*dto.CreateOrderRequest)) *dto.OrderResponse {
	t.Helper()
	req := dto.CreateOrderRequest{
		CustomerID:         f.customer.ID.String(),
		DeviceType:         model.DevicePhone,
		DeviceBrand:        "Samsung",
		DeviceModel:        "A53",
		ProblemDescription: "No enciende",
	}
	if mutate != nil {
		mutate(&req)
	}
	resp, err := f.svc.Create(context.Background(), req, nil)
	require.NoError(t, err)
	return resp
}

func TestOrderCreateAssignsSequentialNumbers(t *testing.T) {
	f := newOrderFixture(t, nil)

	first := f.createOrder(t, nil)
	second := f.createOrder(t, nil)

	assert.Equal(t, "ORD-000001", first.OrderNumber)
	assert.Equal(t, "ORD-000002", second.OrderNumber)
	assert.Equal(t, model.StatusReceived, first.Status)
	assert.Equal(t, model.PaymentNotPaid, first.PaymentMethod)
	assert.Empty(t, first.StatusHistory)
}

func TestOrderCreateUnknownCustomer(t *testing.T) {
	f := newOrderFixture(t, nil)

	_, err := f.svc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID:         uuid.NewString(),
		DeviceType:         model.DevicePhone,
		DeviceBrand:        "Samsung",
		DeviceModel:        "A53",
		ProblemDescription: "No enciende",
	}, nil)

	var notFound *apierror.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestChangeStatusLogsHistory(t *testing.T) {
	f := newOrderFixture(t, nil)
	created := f.createOrder(t, nil)
	id := uuid.MustParse(created.ID)

	resp, err := f.svc.ChangeStatus(context.Background(), id, dto.ChangeStatusRequest{
		Status: model.StatusInService,
		Notes:  "Ingresa al banco de trabajo",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.StatusInService, resp.Status)
	require.Len(t, resp.StatusHistory, 1)
	assert.Equal(t, model.StatusReceived, resp.StatusHistory[0].PreviousStatus)
	assert.Equal(t, model.StatusInService, resp.StatusHistory[0].NewStatus)
	assert.Equal(t, "Ingresa al banco de trabajo", resp.StatusHistory[0].Notes)
}

func TestChangeStatusNoOpLeavesNoHistory(t *testing.T) {
	f := newOrderFixture(t, nil)
	created := f.createOrder(t, nil)
	id := uuid.MustParse(created.ID)

	resp, err := f.svc.ChangeStatus(context.Background(), id, dto.ChangeStatusRequest{Status: model.StatusReceived}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.StatusReceived, resp.Status)
	assert.Empty(t, resp.StatusHistory)
	assert.Empty(t, f.notifier.events)
}

func TestChangeStatusInvalidStatus(t *testing.T) {
	f := newOrderFixture(t, nil)
	created := f.createOrder(t, nil)

	_, err := f.svc.ChangeStatus(context.Background(), uuid.MustParse(created.ID), dto.ChangeStatusRequest{Status: "finished"}, nil)

	var statusErr *apierror.InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
}

func TestChangeStatusPolicyRejection(t *testing.T) {
	// Policy that forbids leaving "received" except into "in_service".
	policy := func(from, to string) bool {
		return from != model.StatusReceived || to == model.StatusInService
	}
	f := newOrderFixture(t, policy)
	created := f.createOrder(t, nil)
	id := uuid.MustParse(created.ID)

	_, err := f.svc.ChangeStatus(context.Background(), id, dto.ChangeStatusRequest{Status: model.StatusDelivered}, nil)
	var opErr *apierror.InvalidOperationError
	require.ErrorAs(t, err, &opErr)

	_, err = f.svc.ChangeStatus(context.Background(), id, dto.ChangeStatusRequest{Status: model.StatusInService}, nil)
	require.NoError(t, err)
}

func TestDeliveredDateSetOnceAndNotifies(t *testing.T) {
	f := newOrderFixture(t, nil)
	created := f.createOrder(t, nil)
	id := uuid.MustParse(created.ID)

	resp, err := f.svc.ChangeStatus(context.Background(), id, dto.ChangeStatusRequest{Status: model.StatusDelivered}, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.DeliveredDate)
	firstDelivery := *resp.DeliveredDate

	// Customer brings the device back, then picks it up again: the original
	// delivered date survives.
	_, err = f.svc.ChangeStatus(context.Background(), id, dto.ChangeStatusRequest{Status: model.StatusInService}, nil)
	require.NoError(t, err)
	resp, err = f.svc.ChangeStatus(context.Background(), id, dto.ChangeStatusRequest{Status: model.StatusDelivered}, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.DeliveredDate)
	assert.Equal(t, firstDelivery, *resp.DeliveredDate)

	require.Len(t, resp.StatusHistory, 3)
	assert.Equal(t, []string{model.StatusDelivered, model.StatusDelivered}, f.notifier.events)
}

func TestReadyStatusNotifies(t *testing.T) {
	f := newOrderFixture(t, nil)
	created := f.createOrder(t, nil)

	_, err := f.svc.ChangeStatus(context.Background(), uuid.MustParse(created.ID), dto.ChangeStatusRequest{Status: model.StatusReady}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{model.StatusReady}, f.notifier.events)
}

func TestAddPaymentAccountLifecycle(t *testing.T) {
	f := newOrderFixture(t, nil)
	cost := d("10000")
	created := f.createOrder(t, func(req *dto.CreateOrderRequest) {
		req.PaymentMethod = model.PaymentAccount
		req.EstimatedCost = &cost
	})
	id := uuid.MustParse(created.ID)
	assert.Equal(t, model.PaymentStatusPending, created.PaymentStatus)
	assert.True(t, d("10000").Equal(created.Balance))

	resp, err := f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{Amount: d("4000")})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPartial, resp.PaymentStatus)
	assert.True(t, d("6000").Equal(resp.Balance))
	assert.True(t, d("4000").Equal(resp.PaidAmount))

	resp, err = f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{Amount: d("6000")})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, resp.Balance.IsZero())

	// Settled orders take no further payments.
	_, err = f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{Amount: d("1")})
	var opErr *apierror.InvalidOperationError
	require.ErrorAs(t, err, &opErr)
}

func TestAddPaymentRejectsNonAccountOrders(t *testing.T) {
	f := newOrderFixture(t, nil)
	cost := d("5000")
	created := f.createOrder(t, func(req *dto.CreateOrderRequest) {
		req.PaymentMethod = model.PaymentCash
		req.EstimatedCost = &cost
	})

	_, err := f.svc.AddPayment(context.Background(), uuid.MustParse(created.ID), dto.AddPaymentRequest{Amount: d("1000")})
	var opErr *apierror.InvalidOperationError
	require.ErrorAs(t, err, &opErr)
}

func TestAddPaymentRejectsOverpayment(t *testing.T) {
	f := newOrderFixture(t, nil)
	cost := d("10000")
	created := f.createOrder(t, func(req *dto.CreateOrderRequest) {
		req.PaymentMethod = model.PaymentAccount
		req.EstimatedCost = &cost
	})

	_, err := f.svc.AddPayment(context.Background(), uuid.MustParse(created.ID), dto.AddPaymentRequest{Amount: d("10001")})
	var opErr *apierror.InvalidOperationError
	require.ErrorAs(t, err, &opErr)
}

func TestAddPaymentSettlesAgainstFinalCost(t *testing.T) {
	f := newOrderFixture(t, nil)
	cost := d("10000")
	created := f.createOrder(t, func(req *dto.CreateOrderRequest) {
		req.PaymentMethod = model.PaymentAccount
		req.EstimatedCost = &cost
	})
	id := uuid.MustParse(created.ID)

	// Repair turned out cheaper: final cost replaces the estimate.
	final := d("8000")
	_, err := f.svc.Update(context.Background(), id, dto.UpdateOrderRequest{FinalCost: &final})
	require.NoError(t, err)

	resp, err := f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{Amount: d("8000")})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, resp.Balance.IsZero())
}
