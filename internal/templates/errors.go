package templates

import "errors"

// ErrUnknownFile is returned when a requested bundle file does not exist.
var ErrUnknownFile = errors.New("unknown bundle file")
