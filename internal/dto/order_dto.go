package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateOrderRequest struct {
	CustomerID         string  `json:"customer_id"  validate:"required,uuid"`
	DeviceType         string  `json:"device_type"  validate:"required,oneof=phone tablet laptop desktop other"`
	DeviceBrand        string  `json:"device_brand" validate:"required"`
	DeviceModel        string  `json:"device_model" validate:"required"`
	DeviceColor        *string `json:"device_color"`
	DeviceSerial       *string `json:"device_serial"`
	SecurityData       *string `json:"security_data"`
	ProblemDescription string  `json:"problem_description" validate:"required"`

	EstimatedCost     *decimal.Decimal `json:"estimated_cost"`
	DepositAmount     decimal.Decimal  `json:"deposit_amount" validate:"min=0"`
	PaymentMethod     string           `json:"payment_method" validate:"omitempty,oneof=cash transfer not_paid account"`
	EstimatedDelivery *string          `json:"estimated_delivery"` // YYYY-MM-DD
	AssignedToID      *string          `json:"assigned_to" validate:"omitempty,uuid"`

	GeneralObservations *string `json:"general_observations"`
}

type UpdateOrderRequest struct {
	Diagnosis           *string          `json:"diagnosis"`
	RepairNotes         *string          `json:"repair_notes"`
	EstimatedCost       *decimal.Decimal `json:"estimated_cost"`
	FinalCost           *decimal.Decimal `json:"final_cost"`
	DepositAmount       *decimal.Decimal `json:"deposit_amount"`
	PaymentMethod       *string          `json:"payment_method" validate:"omitempty,oneof=cash transfer not_paid account"`
	EstimatedDelivery   *string          `json:"estimated_delivery"`
	AssignedToID        *string          `json:"assigned_to" validate:"omitempty,uuid"`
	GeneralObservations *string          `json:"general_observations"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type OrderFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	DeviceType string `form:"device_type"`
	AssignedTo string `form:"assigned_to" validate:"omitempty,uuid"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type StatusHistoryResponse struct {
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	Notes          string `json:"notes"`
	ChangedBy      string `json:"changed_by"`
	CreatedAt      string `json:"created_at"`
}

type OrderResponse struct {
	ID           string `json:"id"`
	OrderNumber  string `json:"order_number"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`

	DeviceType   string  `json:"device_type"`
	DeviceBrand  string  `json:"device_brand"`
	DeviceModel  string  `json:"device_model"`
	DeviceColor  *string `json:"device_color"`
	DeviceSerial *string `json:"device_serial"`

	ProblemDescription string  `json:"problem_description"`
	Diagnosis          *string `json:"diagnosis"`
	RepairNotes        *string `json:"repair_notes"`
	Status             string  `json:"status"`

	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	FinalCost     *decimal.Decimal `json:"final_cost"`
	DepositAmount decimal.Decimal  `json:"deposit_amount"`
	PaymentMethod string           `json:"payment_method"`
	PaymentStatus string           `json:"payment_status"`
	PaidAmount    decimal.Decimal  `json:"paid_amount"`
	Balance       decimal.Decimal  `json:"balance"`

	AssignedTo *string `json:"assigned_to"`
	CreatedBy  *string `json:"created_by"`

	ReceivedDate      string  `json:"received_date"`
	EstimatedDelivery *string `json:"estimated_delivery"`
	DeliveredDate     *string `json:"delivered_date"`

	StatusHistory []StatusHistoryResponse `json:"status_history,omitempty"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// OrderDashboardResponse backs GET /v1/orders/dashboard.
type OrderDashboardResponse struct {
	TotalOrders      int64            `json:"total_orders"`
	InServiceCount   int64            `json:"in_service_count"`
	ReadyCount       int64            `json:"ready_count"`
	DeliveredCount   int64            `json:"delivered_count"`
	StatusBreakdown  map[string]int64 `json:"status_breakdown"`
	PendingOrders    int64            `json:"pending_orders"`
	OrdersThisMonth  int64            `json:"orders_this_month"`
	RevenueThisMonth decimal.Decimal  `json:"revenue_this_month"`
}

// DailyLoadResponse backs GET /v1/orders/daily-load.
type DailyLoadResponse struct {
	Date   string          `json:"date"`
	Count  int64           `json:"count"`
	Orders []OrderResponse `json:"orders"`
}
