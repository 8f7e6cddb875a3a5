package directive

import "errors"

// Common errors for directive resolution operations.
var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrInvalidContext     = errors.New("invalid governance context")
	ErrIntegrityViolation = errors.New("cache entry integrity violation")
	ErrNotFound           = errors.New("governance context not found")
	ErrUnresolved         = errors.New("directive resolution aborted")
)
