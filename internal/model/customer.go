package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a registered client identified by national ID (DNI).
// Customers with repair orders cannot be deleted (application-level protect,
// so the API can report how many orders block the delete).
type Customer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DNI            string    `gorm:"uniqueIndex;not null"`
	CustomerNumber *string
	FirstName      string `gorm:"index;not null"`
	LastName       string `gorm:"index;not null"`
	Phone          string `gorm:"not null"`
	Email          *string
	Address        *string
	CreatedAt      time.Time
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
