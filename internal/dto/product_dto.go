package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Name        string          `json:"name"        validate:"required"`
	Description *string         `json:"description"`
	SKU         string          `json:"sku"         validate:"required"`
	Quantity    int             `json:"quantity"    validate:"min=0"`
	MinStock    int             `json:"min_stock"   validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"required"`
	SalePrice   decimal.Decimal `json:"sale_price"  validate:"required"`
}

type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Active      *bool            `json:"active"`
}

type ProductFilter struct {
	Search     string `form:"search"`
	CategoryID string `form:"category"   validate:"omitempty,uuid"`
	LowStock   bool   `form:"low_stock"`
	Active     string `form:"active"` // "true" | "false" | "all" (default: true)
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	SKU          string          `json:"sku"`
	Quantity     int             `json:"quantity"`
	MinStock     int             `json:"min_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Active       bool            `json:"active"`
	IsLowStock   bool            `json:"is_low_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
	CreatedAt    string          `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// InventoryStatsResponse backs GET /v1/products/statistics.
type InventoryStatsResponse struct {
	TotalProducts       int64           `json:"total_products"`
	LowStockCount       int64           `json:"low_stock_count"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	CategoriesCount     int64           `json:"categories_count"`
}

// PriceLookupResponse backs the public GET /v1/price/:sku endpoint.
type PriceLookupResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
}
