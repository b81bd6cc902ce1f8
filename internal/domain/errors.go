package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = errors.New("donation amount must be greater than zero")
	ErrDonorRequired = errors.New("donation must have a donor")
)
