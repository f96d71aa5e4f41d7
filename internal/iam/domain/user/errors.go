package user

import "errors"

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailDuplicated = errors.New("email already registered")
	ErrInvalidInput    = errors.New("invalid input data")
	ErrRoleNotFound    = errors.New("role not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrInUse           = errors.New("user is referenced by other records")
	ErrSelfDeactivate  = errors.New("user cannot deactivate itself")
)
