package dto

// ApplyMovementRequest mutates a product's stock through the ledger.
// For "in"/"out" quantity is a delta; for "adjustment" it is the absolute
// quantity the stock is set to.
type ApplyMovementRequest struct {
	MovementType string `json:"movement_type" validate:"required,oneof=in out adjustment"`
	Quantity     int    `json:"quantity"      validate:"min=0"`
	Reason       string `json:"reason"        validate:"required"`
}

type MovementFilter struct {
	ProductID    string `form:"product"       validate:"omitempty,uuid"`
	MovementType string `form:"movement_type" validate:"omitempty,oneof=in out adjustment"`
	DateFrom     string `form:"date_from"`
	DateTo       string `form:"date_to"`
	Page         int    `form:"page,default=1"    validate:"min=1"`
	Limit        int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovementResponse struct {
	ID               string `json:"id"`
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	MovementType     string `json:"movement_type"`
	Quantity         int    `json:"quantity"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	Reason           string `json:"reason"`
	UserName         string `json:"user_name"`
	CreatedAt        string `json:"created_at"`
}

// ProductStockResponse backs GET /v1/products/:id/stock: current quantity
// plus the product's recent ledger entries.
type ProductStockResponse struct {
	ProductID  string             `json:"product_id"`
	Name       string             `json:"name"`
	Quantity   int                `json:"quantity"`
	MinStock   int                `json:"min_stock"`
	IsLowStock bool               `json:"is_low_stock"`
	Movements  []MovementResponse `json:"movements"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
