package models

import "errors"

var (
	// ErrInvalidInput is returned for negative, zero or non-finite values where they are not allowed
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidFinancialInput is returned when a profile field cannot be read as a number
	ErrInvalidFinancialInput = errors.New("could not process financial numbers")
	// ErrInsufficientPayment is returned when a loan payment does not cover the accruing interest
	ErrInsufficientPayment = errors.New("payment too low to cover interest")
	// ErrHorizonTooLong is returned when a projection would exceed the supported number of periods
	ErrHorizonTooLong = errors.New("projection horizon too long")
	// ErrUnavailable is returned when an external collaborator has no data yet
	ErrUnavailable = errors.New("temporarily unavailable")
	// ErrFeatureDisabled is returned when an optional integration is not configured
	ErrFeatureDisabled = errors.New("feature not configured")
)
