package team

import "errors"

var (
	ErrCodeDuplicated = errors.New("team code already exists")
	ErrNotFound       = errors.New("team not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrNotMember      = errors.New("user is not a member of the team")
	ErrHasMembers     = errors.New("team still has members")
	ErrInvalidInput   = errors.New("invalid input data")
)
