package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repair order statuses. "received" is the initial state; any status may move
// to any other unless a stricter transition policy is installed on the order
// service. Traceability comes from the status history log.
const (
	StatusReceived    = "received"
	StatusInService   = "in_service"
	StatusRepaired    = "repaired"
	StatusNotRepaired = "not_repaired"
	StatusNotSolved   = "not_solved"
	StatusReady       = "ready"
	StatusDelivered   = "delivered"
	StatusCancelled   = "cancelled"
)

// OrderStatuses lists every valid repair order status.
var OrderStatuses = []string{
	StatusReceived, StatusInService, StatusRepaired, StatusNotRepaired,
	StatusNotSolved, StatusReady, StatusDelivered, StatusCancelled,
}

// ValidOrderStatus reports whether s is one of the defined statuses.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Device types accepted on intake.
const (
	DevicePhone   = "phone"
	DeviceTablet  = "tablet"
	DeviceLaptop  = "laptop"
	DeviceDesktop = "desktop"
	DeviceOther   = "other"
)

// RepairOrder is a device repair job identified by a sequential order number
// (ORD-000001, ORD-000002, ...). ReceivedDate is set once at creation and
// DeliveredDate once on the first transition to "delivered".
type RepairOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber string    `gorm:"uniqueIndex;not null"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`

	DeviceType   string `gorm:"type:varchar(20);not null"`
	DeviceBrand  string `gorm:"not null"`
	DeviceModel  string `gorm:"not null"`
	DeviceColor  *string
	DeviceSerial *string
	// SecurityData holds unlock info handed over at intake (PIN, pattern, ...).
	SecurityData *string

	ProblemDescription string `gorm:"not null"`
	Diagnosis          *string
	RepairNotes        *string

	Status string `gorm:"type:varchar(20);not null;default:'received';index"`

	EstimatedCost *decimal.Decimal `gorm:"type:decimal(10,2)"`
	FinalCost     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	DepositAmount decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	PaymentMethod string           `gorm:"type:varchar(20);not null;default:'not_paid'"`
	PaymentStatus string           `gorm:"type:varchar(20);not null;default:'pending'"`
	PaidAmount    decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	Balance       decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`

	GeneralObservations *string

	AssignedToID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedByID  *uuid.UUID `gorm:"type:uuid"`

	ReceivedDate      time.Time `gorm:"not null;autoCreateTime;index"`
	EstimatedDelivery *time.Time
	DeliveredDate     *time.Time
	UpdatedAt         time.Time

	Customer   *Customer `gorm:"foreignKey:CustomerID"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	CreatedBy  *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`

	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID"`
}

// BeforeSave recomputes balance and payment status on every persist so the
// financial fields can never drift from paid_amount. For cuenta corriente the
// shared threshold rule applies against the settled cost (final when known,
// estimated otherwise); for any other method a deposit counts as the amount
// already paid.
func (o *RepairOrder) BeforeSave(*gorm.DB) error {
	if total := o.TotalCost(); o.PaymentMethod == PaymentAccount && total != nil {
		o.Balance, o.PaymentStatus = ComputePaymentStatus(*total, o.PaidAmount)
	} else if o.DepositAmount.GreaterThan(decimal.Zero) {
		o.PaidAmount = o.DepositAmount
		if o.EstimatedCost != nil {
			o.Balance = o.EstimatedCost.Sub(o.PaidAmount)
		}
	}
	return nil
}

// TotalCost is the cost payments are settled against: final when known,
// estimated otherwise. Nil when neither has been quoted yet.
func (o *RepairOrder) TotalCost() *decimal.Decimal {
	if o.FinalCost != nil {
		return o.FinalCost
	}
	return o.EstimatedCost
}

// OrderStatusHistory is an immutable record of one status transition.
// Exactly one row exists per actual transition (no-ops are not logged).
type OrderStatusHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PreviousStatus string    `gorm:"type:varchar(20);not null"`
	NewStatus      string    `gorm:"type:varchar(20);not null"`
	Notes          string
	ChangedByID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time

	ChangedBy *User `gorm:"foreignKey:ChangedByID;constraint:OnDelete:SET NULL"`
}

// TableName overrides GORM's pluralization (histories → history).
func (OrderStatusHistory) TableName() string { return "order_status_history" }
