// SPDX-License-Identifier: MIT
// Package: reliaroute/builder
//
// errors.go - sentinel errors for the builder package.
//
// Option constructors (WithX) panic on meaningless values. Constructors never
// panic; they return these sentinels wrapped with the constructor name.

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewStations indicates a size parameter (stations, lines, rows, cols)
// below the constructor minimum.
var ErrTooFewStations = errors.New("builder: parameter too small")

// ErrConstructFailed indicates that the network or schedule rejected a
// mutation, or that Build received a nil constructor.
var ErrConstructFailed = errors.New("builder: construction failed")

// Method names used as error context.
const (
	methodLine     = "Line"
	methodWalk     = "Walk"
	methodCorridor = "Corridor"
	methodGrid     = "Grid"
)

// builderErrorf returns "<method>: <message>" keeping %w chains intact.
func builderErrorf(method, format string, args ...any) error {
	return fmt.Errorf("%s: %w", method, fmt.Errorf(format, args...))
}
