package dto

type CreateCustomerRequest struct {
	DNI       string  `json:"dni"        validate:"required"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name"  validate:"required"`
	Phone     string  `json:"phone"      validate:"required"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Address   *string `json:"address"`
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Address   *string `json:"address"`
}

type CustomerFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	DNI       string  `json:"dni"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  string  `json:"full_name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	CreatedAt string  `json:"created_at"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
