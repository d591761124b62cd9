// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
)

// ErrConstructFailed indicates a nil target grid or nil constructor.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrInvalidDensity indicates a density outside the closed interval [0,1].
var ErrInvalidDensity = errors.New("builder: density out of range")

// ErrNeedRand indicates that a random constructor ran without an RNG
// (WithSeed or WithRand must be set).
var ErrNeedRand = errors.New("builder: rng is required")

// ErrBadSegment indicates a Wall whose endpoints share neither row nor column.
var ErrBadSegment = errors.New("builder: wall must be horizontal or vertical")

// wrapf attaches method context to err while keeping errors.Is semantics.
func wrapf(method, what string, err error) error {
	return fmt.Errorf("%s: %s: %w", method, what, err)
}
