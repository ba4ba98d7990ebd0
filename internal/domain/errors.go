package domain

import "errors"

// ErrInvalidDomain indicates that a grid or one of its axes failed validation.
var ErrInvalidDomain = errors.New("invalid domain")

// ErrDuplicateAxis indicates that a grid was given the same axis type twice.
var ErrDuplicateAxis = errors.New("duplicate axis")
