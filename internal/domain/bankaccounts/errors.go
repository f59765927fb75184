package bankaccounts

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrBankAccountNotFound = errors.New("bank account not found")
)
