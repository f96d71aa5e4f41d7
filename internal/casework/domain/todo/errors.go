package todo

import "errors"

var (
	ErrNotFound     = errors.New("todo not found")
	ErrCaseNotFound = errors.New("case not found")
	ErrInvalidInput = errors.New("invalid input data")
)
