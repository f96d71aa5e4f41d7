package knowledge

import "errors"

var (
	ErrNotFound           = errors.New("knowledge document not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrCaseNotFound       = errors.New("case not found")
	ErrFileTooLarge       = errors.New("attachment exceeds maximum size")
	ErrInvalidInput       = errors.New("invalid input data")
)
