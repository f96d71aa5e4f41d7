package disposition

import "errors"

var (
	ErrNotFound         = errors.New("disposition not found")
	ErrCaseNotFound     = errors.New("case not found")
	ErrInvalidYear      = errors.New("invalid year")
	ErrInvalidDateRange = errors.New("fecha_desde after fecha_hasta")
	ErrInvalidInput     = errors.New("invalid input data")
)
