package field

import "errors"

// ErrShapeMismatch indicates that an input array cannot be reconciled with
// the shape of the domain it is being attached to.
var ErrShapeMismatch = errors.New("input_array and domain have different shapes")

// ErrNoLatitudeAxis indicates that a field has no domain or that its domain
// carries no latitude axis.
//
//nolint:staticcheck // message text is matched verbatim by callers
var ErrNoLatitudeAxis = errors.New("No latitude axis in input field")
