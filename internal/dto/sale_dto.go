package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	// Optional negotiated price for this line; the product's sale price
	// applies when absent.
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
}

type CreateSaleRequest struct {
	CustomerID    *string           `json:"customer_id"   validate:"omitempty,uuid"`
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card transfer multiple account"`
	Discount      decimal.Decimal   `json:"discount"       validate:"min=0"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"    validate:"min=0"`
	Notes         *string           `json:"notes"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type SaleFilter struct {
	Search        string `form:"search"`
	PaymentMethod string `form:"payment_method"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID              string             `json:"id"`
	SaleNumber      string             `json:"sale_number"`
	Date            string             `json:"date"`
	CustomerID      *string            `json:"customer_id"`
	CustomerDisplay string             `json:"customer_display"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Discount        decimal.Decimal    `json:"discount"`
	Total           decimal.Decimal    `json:"total"`
	PaymentMethod   string             `json:"payment_method"`
	PaymentStatus   string             `json:"payment_status"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	Balance         decimal.Decimal    `json:"balance"`
	EmployeeName    string             `json:"employee_name"`
	Notes           *string            `json:"notes"`
	Items           []SaleItemResponse `json:"items"`
}

type SaleListItem struct {
	ID              string          `json:"id"`
	SaleNumber      string          `json:"sale_number"`
	Date            string          `json:"date"`
	CustomerDisplay string          `json:"customer_display"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"payment_method"`
	EmployeeName    string          `json:"employee_name"`
	ItemsCount      int             `json:"items_count"`
}

type SaleListResponse struct {
	Data  []SaleListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Dashboard / reports ─────────────────────────────────────────────────────

type SalesPeriodStats struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type TopProductStat struct {
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

type PaymentMethodStat struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

type SalesDashboardResponse struct {
	SalesToday     SalesPeriodStats    `json:"sales_today"`
	SalesMonth     SalesPeriodStats    `json:"sales_month"`
	TopProducts    []TopProductStat    `json:"top_products"`
	PaymentMethods []PaymentMethodStat `json:"payment_methods"`
}

// DailyReportResponse backs GET /v1/sales/daily-report (cierre de caja).
type DailyReportResponse struct {
	Date            string              `json:"date"`
	TotalSales      int64               `json:"total_sales"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ByPaymentMethod []PaymentMethodStat `json:"by_payment_method"`
	Sales           []SaleListItem      `json:"sales"`
}
