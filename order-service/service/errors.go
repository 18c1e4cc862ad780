package service

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrAvailability     = errors.New("availability check failed")
	ErrBookingTransport = errors.New("booking request failed")
	ErrPersistence      = errors.New("order persistence failed")
	ErrOrderInProgress  = errors.New("an order is already being created for this user")
)
