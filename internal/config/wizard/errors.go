package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errRequired           = errors.New("value is required")
	errClusterNameInvalid = errors.New("cluster name must be 1-63 letters, digits or hyphens")
	errNotANumber         = errors.New("must be a whole number")
	errOutOfRange         = errors.New("value out of range")
	errVersionInvalid     = errors.New("invalid Kubernetes version (expected e.g. 1.29 or 1.29.x)")
	errQuantityInvalid    = errors.New("invalid resource quantity (expected e.g. 250m or 256Mi)")
	errUtilizationInvalid = errors.New("utilization must be between 30 and 90 in steps of 5")

	// ErrCancelled is returned when the user leaves the wizard from the
	// review step without saving.
	ErrCancelled = errors.New("wizard cancelled")
)
