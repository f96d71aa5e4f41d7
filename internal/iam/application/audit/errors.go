package audit

import "errors"

var ErrInvalidFilter = errors.New("invalid audit filter")
