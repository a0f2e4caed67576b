package service

import "errors"

// Error kinds exposed to callers. The HTTP layer maps these to status
// codes; the message text carried alongside stays display-ready.
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidState = errors.New("record is not in a state that allows this action")
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("not authorized to perform this action")
	ErrProvider     = errors.New("upstream provider failure")
)
