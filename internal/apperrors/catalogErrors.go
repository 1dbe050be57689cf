package apperrors

import "errors"

var (
	ErrDriverNotFound      = errors.New("driver not found in catalog")
	ErrConstructorNotFound = errors.New("constructor not found in catalog")
)
