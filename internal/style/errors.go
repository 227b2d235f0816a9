package style

import "errors"

var (
	ErrEmptyName     = errors.New("name is empty")
	ErrDuplicateName = errors.New("name already exists")
	ErrNotFound      = errors.New("entity not found")
)
