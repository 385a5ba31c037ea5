package service

import (
	"errors"
)

// Business rule failures surfaced to clients. Handlers map these onto HTTP
// statuses; anything else is treated as an internal error.
var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrBookNotFound        = errors.New("book not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNoCopiesAvailable   = errors.New("no copies available to borrow")
	ErrActiveLoanExists    = errors.New("user already has an active borrowed book (only one allowed at a time)")
	ErrAlreadyReturned     = errors.New("book has already been returned")
	ErrBookHasTransactions = errors.New("book has existing transactions")
	ErrEmailTaken          = errors.New("email already registered")
)
