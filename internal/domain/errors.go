package domain

import "errors"

var (
	ErrEntityNotFound  = errors.New("entity not found")
	ErrMalformedEntity = errors.New("malformed entity")
)
