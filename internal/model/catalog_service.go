package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService is a priced repair service used to quote customers,
// e.g. "Cambio de pantalla Samsung A53".
type CatalogService struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Description   *string
	DeviceBrand   *string
	DeviceModel   *string
	BasePrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EstimatedTime *string         // free text, e.g. "2-3 dias"
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default pluralization (catalog_services reads
// better than the generated name for this table).
func (CatalogService) TableName() string { return "catalog_services" }
