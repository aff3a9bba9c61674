package domain

import "errors"

var (
	ErrInvalidKey  = errors.New("invalid cell key")
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)
