package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stocked inventory item identified by SKU.
//
// Quantity is a cache of the net effect of all stock movements and sale
// deductions — every mutation must go through the stock ledger (or the
// flagged sale fast path) so the ledger stays the source of truth.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"index;not null"`
	Description *string
	SKU         string          `gorm:"uniqueIndex;not null"`
	Quantity    int             `gorm:"not null;default:0"`
	MinStock    int             `gorm:"not null;default:5"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// IsLowStock reports whether the product is at or below its minimum stock.
func (p *Product) IsLowStock() bool { return p.Quantity <= p.MinStock }

// TotalValue is the stock valuation at unit (cost) price.
func (p *Product) TotalValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
