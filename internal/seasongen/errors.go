package seasongen

import "errors"

// Sentinel kinds for generator errors.
var (
	ErrInvalidShape = errors.New("invalid season shape")
)
