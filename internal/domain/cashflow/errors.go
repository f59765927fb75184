package cashflow

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEntryNotFound    = errors.New("cash flow entry not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrEntityNotAllowed = errors.New("entity not allowed")
	ErrExportTooLarge   = errors.New("export too large")
)
