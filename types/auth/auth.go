package auth

import (
	"tour-booking/types"
)

// RegisterRequest is the payload for POST /api/auth/register. Role is
// optional; only allow-listed elevated roles are honored.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=CUSTOMER EMPLOYEE SUPER_ADMIN"`
}

func (r RegisterRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(r))
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(r))
}

// ForgotPasswordRequest is the payload for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r ForgotPasswordRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(r))
}

// VerifyOTPLoginRequest is the payload for POST /api/auth/verify-otp-login.
type VerifyOTPLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

func (r VerifyOTPLoginRequest) Validate() string {
	return types.ValidationMessage(types.Validate.Struct(r))
}
