package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user is inactive")
	ErrOTPPending         = errors.New("otp code already pending")
	ErrOTPWrong           = errors.New("otp code wrong or expired")
)
