package cases

import "errors"

var (
	ErrNotFound         = errors.New("case not found")
	ErrNumeroDuplicated = errors.New("case number already exists")
	ErrInvalidCriteria  = errors.New("criteria must be between 1 and 3")
	ErrInvalidEstado    = errors.New("invalid case state")
	ErrInvalidDateRange = errors.New("fecha_desde after fecha_hasta")
	ErrInvalidInput     = errors.New("invalid input data")
)
