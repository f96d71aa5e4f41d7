package archive

import "errors"

var (
	ErrNotFound     = errors.New("archived case not found")
	ErrCaseNotFound = errors.New("case not found")
	ErrNumeroReused = errors.New("case number already in use")
	ErrSnapshot     = errors.New("invalid archived snapshot")
)
