package auditoria_log

import "errors"

var (
	ErrNotFound     = errors.New("audit log not found")
	ErrInvalidInput = errors.New("invalid input data")
)
