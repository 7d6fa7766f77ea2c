// Package prismerr declares the structured error kinds the core
// distinguishes: plain errors.New sentinel values, wrapped with call-site
// context via fmt.Errorf("...: %w", ...) where the caller has more to add.
package prismerr

import "errors"

var (
	// ErrInvalidLevel is returned when a requested Hald CLUT level falls
	// outside 2..=16.
	ErrInvalidLevel = errors.New("level must be in range 2..=16")

	// ErrEmptyPalette is returned when a palette has zero colors.
	ErrEmptyPalette = errors.New("palette must have at least one color")

	// ErrInvalidHaldDim is returned when an image's dimensions do not
	// correspond to any valid Hald CLUT level.
	ErrInvalidHaldDim = errors.New("image dimensions do not match any hald clut level")

	// ErrCancelled is returned (or signaled, in the interruptible forms
	// that return a boolean instead) when a cancellation token fires
	// before a call completes.
	ErrCancelled = errors.New("operation cancelled")

	// ErrInvalidParam is returned when a remapper's construction
	// parameters are out of their valid domain (std_dev < 0, iterations
	// <= 0, radius <= 0, power <= 0, shape <= 0).
	ErrInvalidParam = errors.New("invalid parameter")
)
