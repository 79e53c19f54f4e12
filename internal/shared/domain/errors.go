package domain

import "errors"

// ErrUnavailable marks failures of the backing store rather than of the caller's input.
// Anything wrapping it left no committed side effects.
var ErrUnavailable = errors.New("store unavailable")
