package apperror

import "errors"

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrMalformedHistory = errors.New("malformed move history")
	ErrGameFinished     = errors.New("game is already finished")
	ErrMatchNotFound    = errors.New("match not found")
	ErrUnknownPlayer    = errors.New("unknown player")
)
