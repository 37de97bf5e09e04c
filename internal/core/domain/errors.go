package domain

import "errors"

// Ошибки валидации входных данных движка
var (
	ErrInvalidDuration  = errors.New("slot duration must be positive")
	ErrInvalidTimeRange = errors.New("slot start must be before slot end")
	ErrInvalidDate      = errors.New("date is required")
	ErrInvalidBuffer    = errors.New("booking buffer must not be negative")
)
