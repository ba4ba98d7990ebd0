package ndarray

import "errors"

// ErrInvalidShape indicates that a shape has a negative dimension or does not
// match the number of values supplied.
var ErrInvalidShape = errors.New("invalid array shape")

// ErrIndexOutOfRange indicates that a positional index or slice bound falls
// outside the array, or that a rank-0 array was indexed.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrAxisOutOfRange indicates that a reduction axis does not exist.
var ErrAxisOutOfRange = errors.New("axis out of range")

// ErrBroadcast indicates that two operand shapes are not broadcast-compatible.
var ErrBroadcast = errors.New("operands could not be broadcast together")
