package account

import "errors"

var (
	ErrPersist = errors.New("account state not persisted")
	ErrRestore = errors.New("account state not restored")
)
