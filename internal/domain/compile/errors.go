package compile

import (
	"errors"
)

// Sentinel kinds for caller contract violations. Data-quality problems
// inside the inputs never surface as errors; only structurally missing
// required collections do.
var (
	ErrNilBaseEvents    = errors.New("base events collection is nil")
	ErrNilEliminations  = errors.New("eliminations collection is nil")
	ErrNilTribeTimeline = errors.New("tribe timeline is nil")
)
