package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types. "adjustment" sets the quantity to an absolute value,
// the other two are deltas.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

// StockMovement is an immutable audit record of a product quantity change.
// Movements are NEVER modified or deleted — corrections create new entries.
type StockMovement struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index"`
	MovementType     string    `gorm:"type:varchar(20);not null"`
	Quantity         int       `gorm:"not null"`
	PreviousQuantity int       `gorm:"not null"`
	NewQuantity      int       `gorm:"not null"`
	Reason           string    `gorm:"not null"`
	UserID           *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// ValidMovementType reports whether t is one of the defined movement types.
func ValidMovementType(t string) bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}
