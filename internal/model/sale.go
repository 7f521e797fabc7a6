package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a point-of-sale ticket identified by a sequential sale number
// (VTA-000001, ...). A sale references a registered customer, or carries a
// free-text customer name, or neither (anonymous). Items are fixed at
// creation — there is no update path for adding or removing items.
type Sale struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleNumber string    `gorm:"uniqueIndex;not null"`
	Date       time.Time `gorm:"not null;autoCreateTime;index"`

	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string

	Subtotal decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Discount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	PaymentMethod string          `gorm:"type:varchar(20);not null;default:'cash'"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'paid'"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Balance       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	EmployeeID *uuid.UUID `gorm:"type:uuid"`
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Customer *Customer  `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Employee *User      `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
}

// CustomerDisplay returns the registered customer's name when linked,
// the free-text name otherwise, or a placeholder for anonymous sales.
func (s *Sale) CustomerDisplay() string {
	if s.Customer != nil {
		return s.Customer.FullName()
	}
	if s.CustomerName != "" {
		return s.CustomerName
	}
	return "Cliente Anonimo"
}

// SaleItem is one product line of a sale. UnitPrice is captured at sale time
// and never follows later product price changes. Immutable once created.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
