package auth

import "case-management-system/internal/pkg/validation"

var loginRules = validation.Rules{
	"email":    "required,email",
	"password": "required",
}

var otpRules = validation.Rules{
	"email": "required,email",
}

var resetRules = validation.Rules{
	"email":    "required,email",
	"otp":      "required,len=6,numeric",
	"password": "required,min=8,max=128",
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPRequest struct {
	Email string `json:"email"`
}

type OTPResetPasswordRequest struct {
	Email    string `json:"email"`
	OTPCode  string `json:"otp"`
	Password string `json:"password"`
}
