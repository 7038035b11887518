package domain

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrCustomerLocked      = errors.New("customer is locked")
	ErrAccountSuspended    = errors.New("account is suspended")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrBelowMinimumBalance = errors.New("balance would fall below the minimum for this account type")
	ErrDuplicateAccount    = errors.New("account number already exists")
	ErrPersistence         = errors.New("persistence failure")
)
