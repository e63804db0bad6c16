package dto

// Request DTOs

type RegisterRequest struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email,max=120"`
	Password string `form:"password" validate:"required,min=6"`
	Role     string `form:"role" validate:"omitempty,oneof=patient doctor"`
}

type LoginRequest struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// CreateSuperuserRequest is filled by the command line utility, not a web form.
type CreateSuperuserRequest struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=120"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=admin superadmin"`
}

type UpdateUserRoleRequest struct {
	Role string `form:"role" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string        `json:"-"`
	User  *UserResponse `json:"user"`
}
