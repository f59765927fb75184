package entities

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrEntityNotFound = errors.New("entity not found")
	ErrEntityInUse    = errors.New("entity in use")
)
