package role

import "errors"

var (
	ErrNotFound           = errors.New("role not found")
	ErrNameDuplicated     = errors.New("role name already exists")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrHasUsers           = errors.New("role is assigned to users")
	ErrSystemRole         = errors.New("system roles cannot be renamed or removed")
	ErrInvalidInput       = errors.New("invalid input data")
)
