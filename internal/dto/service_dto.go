package dto

import "github.com/shopspring/decimal"

type CreateServiceRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   *string         `json:"description"`
	DeviceBrand   *string         `json:"device_brand"`
	DeviceModel   *string         `json:"device_model"`
	BasePrice     decimal.Decimal `json:"base_price" validate:"required"`
	EstimatedTime *string         `json:"estimated_time"`
}

type UpdateServiceRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	DeviceBrand   *string          `json:"device_brand"`
	DeviceModel   *string          `json:"device_model"`
	BasePrice     *decimal.Decimal `json:"base_price"`
	EstimatedTime *string          `json:"estimated_time"`
	Active        *bool            `json:"active"`
}

type ServiceFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ServiceResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	DeviceBrand   *string         `json:"device_brand"`
	DeviceModel   *string         `json:"device_model"`
	BasePrice     decimal.Decimal `json:"base_price"`
	EstimatedTime *string         `json:"estimated_time"`
	Active        bool            `json:"active"`
}

type ServiceListResponse struct {
	Data  []ServiceResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
