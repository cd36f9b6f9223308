package persistence

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown persistence backend")
	ErrSealed         = errors.New("sealed state cannot be opened")
)
