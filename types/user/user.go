package user

import (
	"tour-booking/types"
)

// UpdateProfileRequest is the payload for PUT /api/users/me. The current
// password is always re-verified before any change is applied.
type UpdateProfileRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=6"`
}

func (r UpdateProfileRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(r))
}

// CreateEmployeeRequest is the payload for POST /api/users/employees.
type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=EMPLOYEE SUPER_ADMIN"`
}

func (r CreateEmployeeRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(r))
}
