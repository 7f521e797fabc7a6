package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/config"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/infra"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
)

// Notifier enqueues asynchronous customer notifications. The zero
// implementation may drop them; order processing never blocks on delivery.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, orderID uuid.UUID, status string)
}

// TransitionPolicy decides whether a repair order may move between two
// statuses. The default permits every transition; shops wanting a stricter
// workflow install their own policy at wiring time.
type TransitionPolicy func(from, to string) bool

// AllowAllTransitions is the default policy.
func AllowAllTransitions(_, _ string) bool { return true }

type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest, createdBy *uuid.UUID) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req dto.ChangeStatusRequest, changedBy *uuid.UUID) (*dto.OrderResponse, error)
	AddPayment(ctx context.Context, id uuid.UUID, req dto.AddPaymentRequest) (*dto.OrderResponse, error)
	Dashboard(ctx context.Context) (*dto.OrderDashboardResponse, error)
	MyOrders(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.OrderResponse, error)
	DailyLoad(ctx context.Context, day time.Time) (*dto.DailyLoadResponse, error)
	Ticket(ctx context.Context, id uuid.UUID) (string, error)
}

type orderService struct {
	orders     repository.OrderRepository
	customers  repository.CustomerRepository
	cfg        *config.Config
	notifier   Notifier
	transition TransitionPolicy
	log        zerolog.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	cfg *config.Config,
	notifier Notifier,
	transition TransitionPolicy,
	log zerolog.Logger,
) OrderService {
	if transition == nil {
		transition = AllowAllTransitions
	}
	return &orderService{
		orders:     orders,
		customers:  customers,
		cfg:        cfg,
		notifier:   notifier,
		transition: transition,
		log:        log,
	}
}

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest, createdBy *uuid.UUID) (*dto.OrderResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, translateNotFound(err, "Cliente")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentNotPaid
	}

	order := &model.RepairOrder{
		CustomerID:          customerID,
		DeviceType:          req.DeviceType,
		DeviceBrand:         req.DeviceBrand,
		DeviceModel:         req.DeviceModel,
		DeviceColor:         req.DeviceColor,
		DeviceSerial:        req.DeviceSerial,
		SecurityData:        req.SecurityData,
		ProblemDescription:  req.ProblemDescription,
		Status:              model.StatusReceived,
		EstimatedCost:       req.EstimatedCost,
		DepositAmount:       req.DepositAmount,
		PaymentMethod:       paymentMethod,
		PaymentStatus:       model.PaymentStatusPending,
		GeneralObservations: req.GeneralObservations,
		CreatedByID:         createdBy,
	}
	if req.AssignedToID != nil {
		assignedID, err := uuid.Parse(*req.AssignedToID)
		if err != nil {
			return nil, err
		}
		order.AssignedToID = &assignedID
	}
	if req.EstimatedDelivery != nil {
		day, err := time.Parse("2006-01-02", *req.EstimatedDelivery)
		if err != nil {
			return nil, &apierror.InvalidOperationError{Reason: "Fecha de entrega estimada invalida"}
		}
		order.EstimatedDelivery = &day
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		number, err := s.orders.NextOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		return s.orders.CreateTx(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_number", order.OrderNumber).
		Str("customer_id", customerID.String()).
		Msg("repair order created")

	return s.Get(ctx, order.ID)
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Orden")
	}
	resp := orderToResponse(order, true)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderToResponse(&orders[i], false))
	}
	return &dto.OrderListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Orden")
	}

	if req.Diagnosis != nil {
		order.Diagnosis = req.Diagnosis
	}
	if req.RepairNotes != nil {
		order.RepairNotes = req.RepairNotes
	}
	if req.EstimatedCost != nil {
		order.EstimatedCost = req.EstimatedCost
	}
	if req.FinalCost != nil {
		order.FinalCost = req.FinalCost
	}
	if req.DepositAmount != nil {
		order.DepositAmount = *req.DepositAmount
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.GeneralObservations != nil {
		order.GeneralObservations = req.GeneralObservations
	}
	if req.AssignedToID != nil {
		assignedID, err := uuid.Parse(*req.AssignedToID)
		if err != nil {
			return nil, err
		}
		order.AssignedToID = &assignedID
	}
	if req.EstimatedDelivery != nil {
		day, err := time.Parse("2006-01-02", *req.EstimatedDelivery)
		if err != nil {
			return nil, &apierror.InvalidOperationError{Reason: "Fecha de entrega estimada invalida"}
		}
		order.EstimatedDelivery = &day
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// ChangeStatus moves the order through its lifecycle. A change to the current
// status is a no-op and leaves no history row; a real transition writes the
// order and exactly one history row atomically.
func (s *orderService) ChangeStatus(ctx context.Context, id uuid.UUID, req dto.ChangeStatusRequest, changedBy *uuid.UUID) (*dto.OrderResponse, error) {
	if !model.ValidOrderStatus(req.Status) {
		return nil, &apierror.InvalidStatusError{Status: req.Status}
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Orden")
	}

	if order.Status == req.Status {
		resp := orderToResponse(order, true)
		return &resp, nil
	}
	if !s.transition(order.Status, req.Status) {
		return nil, &apierror.InvalidOperationError{
			Reason: "Transicion de estado no permitida: " + order.Status + " → " + req.Status,
		}
	}

	previous := order.Status
	order.Status = req.Status
	// The first delivery sets the date; a re-delivery after a return keeps it.
	if req.Status == model.StatusDelivered && order.DeliveredDate == nil {
		now := time.Now()
		order.DeliveredDate = &now
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.orders.SaveTx(tx, order); err != nil {
			return err
		}
		return s.orders.CreateHistoryTx(tx, &model.OrderStatusHistory{
			OrderID:        order.ID,
			PreviousStatus: previous,
			NewStatus:      req.Status,
			Notes:          req.Notes,
			ChangedByID:    changedBy,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_number", order.OrderNumber).
		Str("from", previous).
		Str("to", req.Status).
		Msg("order status changed")

	if s.notifier != nil && (req.Status == model.StatusReady || req.Status == model.StatusDelivered) {
		s.notifier.OrderStatusChanged(ctx, order.ID, req.Status)
	}

	return s.Get(ctx, id)
}

// AddPayment registers a partial payment on a cuenta corriente order.
func (s *orderService) AddPayment(ctx context.Context, id uuid.UUID, req dto.AddPaymentRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Orden")
	}

	if order.PaymentMethod != model.PaymentAccount {
		return nil, &apierror.InvalidOperationError{Reason: "Solo las ordenes de cuenta corriente aceptan pagos parciales"}
	}
	total := order.TotalCost()
	if total == nil {
		return nil, &apierror.InvalidOperationError{Reason: "La orden no tiene costo definido"}
	}
	if !order.Balance.GreaterThan(decimal.Zero) {
		return nil, &apierror.InvalidOperationError{Reason: "La orden no tiene saldo pendiente"}
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, &apierror.InvalidOperationError{Reason: "El monto debe ser mayor a cero"}
	}
	if req.Amount.GreaterThan(order.Balance) {
		return nil, &apierror.InvalidOperationError{Reason: "El monto excede el saldo pendiente"}
	}

	order.PaidAmount = order.PaidAmount.Add(req.Amount)
	order.Balance, order.PaymentStatus = model.ComputePaymentStatus(*total, order.PaidAmount)

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_number", order.OrderNumber).
		Str("amount", req.Amount.String()).
		Str("payment_status", order.PaymentStatus).
		Msg("order payment registered")

	return s.Get(ctx, id)
}

func (s *orderService) Dashboard(ctx context.Context) (*dto.OrderDashboardResponse, error) {
	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total, pending int64
	for status, n := range counts {
		total += n
		if status != model.StatusDelivered && status != model.StatusCancelled {
			pending += n
		}
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthCount, err := s.orders.CountReceivedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.RevenueDeliveredSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	return &dto.OrderDashboardResponse{
		TotalOrders:      total,
		InServiceCount:   counts[model.StatusInService],
		ReadyCount:       counts[model.StatusReady],
		DeliveredCount:   counts[model.StatusDelivered],
		StatusBreakdown:  counts,
		PendingOrders:    pending,
		OrdersThisMonth:  monthCount,
		RevenueThisMonth: revenue,
	}, nil
}

func (s *orderService) MyOrders(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.orders.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderToResponse(&orders[i], false))
	}
	return out, nil
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.OrderResponse, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, translateNotFound(err, "Cliente")
	}
	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderToResponse(&orders[i], false))
	}
	return out, nil
}

func (s *orderService) DailyLoad(ctx context.Context, day time.Time) (*dto.DailyLoadResponse, error) {
	orders, err := s.orders.ListReceivedOn(ctx, day)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderToResponse(&orders[i], false))
	}
	return &dto.DailyLoadResponse{
		Date:   day.Format("2006-01-02"),
		Count:  int64(len(out)),
		Orders: out,
	}, nil
}

func (s *orderService) Ticket(ctx context.Context, id uuid.UUID) (string, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return "", translateNotFound(err, "Orden")
	}
	return infra.GenerateOrderTicketPDF(order, s.cfg.BusinessName, s.cfg.PDFStoragePath)
}

func orderToResponse(o *model.RepairOrder, withHistory bool) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:                 o.ID.String(),
		OrderNumber:        o.OrderNumber,
		CustomerID:         o.CustomerID.String(),
		DeviceType:         o.DeviceType,
		DeviceBrand:        o.DeviceBrand,
		DeviceModel:        o.DeviceModel,
		DeviceColor:        o.DeviceColor,
		DeviceSerial:       o.DeviceSerial,
		ProblemDescription: o.ProblemDescription,
		Diagnosis:          o.Diagnosis,
		RepairNotes:        o.RepairNotes,
		Status:             o.Status,
		EstimatedCost:      o.EstimatedCost,
		FinalCost:          o.FinalCost,
		DepositAmount:      o.DepositAmount,
		PaymentMethod:      o.PaymentMethod,
		PaymentStatus:      o.PaymentStatus,
		PaidAmount:         o.PaidAmount,
		Balance:            o.Balance,
		ReceivedDate:       o.ReceivedDate.Format("2006-01-02T15:04:05Z07:00"),
	}
	if o.Customer != nil {
		resp.CustomerName = o.Customer.FullName()
	}
	if o.AssignedTo != nil {
		name := o.AssignedTo.FullName()
		resp.AssignedTo = &name
	}
	if o.CreatedBy != nil {
		name := o.CreatedBy.FullName()
		resp.CreatedBy = &name
	}
	if o.EstimatedDelivery != nil {
		d := o.EstimatedDelivery.Format("2006-01-02")
		resp.EstimatedDelivery = &d
	}
	if o.DeliveredDate != nil {
		d := o.DeliveredDate.Format("2006-01-02T15:04:05Z07:00")
		resp.DeliveredDate = &d
	}
	if withHistory {
		for i := range o.StatusHistory {
			h := &o.StatusHistory[i]
			entry := dto.StatusHistoryResponse{
				PreviousStatus: h.PreviousStatus,
				NewStatus:      h.NewStatus,
				Notes:          h.Notes,
				CreatedAt:      h.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
			if h.ChangedBy != nil {
				entry.ChangedBy = h.ChangedBy.FullName()
			}
			resp.StatusHistory = append(resp.StatusHistory, entry)
		}
	}
	return resp
}
