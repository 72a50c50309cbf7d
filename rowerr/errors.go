// Package rowerr defines the sentinel errors the row engine reports
// synchronously to its caller.
package rowerr

import "errors"

var (
	// ErrInvalidArgument is returned for an out-of-range column, a
	// zero-width glyph, a zero-width row, or any other argument the
	// engine's contract forbids.
	ErrInvalidArgument = errors.New("vtrow: invalid argument")

	// ErrCapacityExceeded is returned when a row would be created or
	// resized wider than 65535 columns. Run replacements never return
	// it: the run-length map splits an overlong run into several.
	ErrCapacityExceeded = errors.New("vtrow: capacity exceeded")
)
