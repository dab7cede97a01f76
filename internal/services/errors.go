package services

import "errors"

// Sentinel errors shared across services. Handlers use errors.Is to pick
// response codes; the wrapped message carries the detail.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrGateway            = errors.New("payment gateway error")
)
