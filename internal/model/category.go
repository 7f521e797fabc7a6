package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products. Deleting a category that still has products
// is rejected (protect semantics).
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
}
