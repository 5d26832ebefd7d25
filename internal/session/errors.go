package session

import "errors"

var (
	ErrSessionBusy  = errors.New("session is busy")
	ErrInvalidState = errors.New("invalid session state")
)
