// Package common defines shared sentinel errors and small pure helpers used
// across the user API layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Request-level errors (required input absent or unusable).
	ErrorMissingField  = errors.New("missing required field")
	ErrorValueNotFound = errors.New("value not found")

	// Conditional-write errors.
	ErrorConflict = errors.New("record was modified concurrently")
)
