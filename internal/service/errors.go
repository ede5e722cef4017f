package service

import "errors"

// Business errors surfaced to the transport layer
var (
	ErrValidation               = errors.New("missing or invalid required field")
	ErrNotFound                 = errors.New("record not found")
	ErrDuplicateHouseholdNumber = errors.New("household number already registered")
	ErrInsufficientStock        = errors.New("insufficient inventory quantity")
)
