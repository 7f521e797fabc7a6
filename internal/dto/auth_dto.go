package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type CreateUserRequest struct {
	Username  string  `json:"username"   validate:"required,min=3"`
	Password  string  `json:"password"   validate:"required,min=8"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name"  validate:"required"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"       validate:"required,oneof=admin employee"`
}

type UpdateUserRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"  validate:"omitempty,oneof=admin employee"`
	Password  string  `json:"password" validate:"omitempty,min=8"`
}

type UpdateProfileRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  string  `json:"full_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`
}
