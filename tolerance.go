package gsvd

import (
	"math"
	"strconv"
)

// MachineEpsilon is the default tolerance: the spacing between 1.0 and the
// next representable float64 (2^-52).
const MachineEpsilon = 0x1p-52

// Tolerance is either disabled or an active, finite, non-negative threshold
// compared against squared singular values.
//
// The zero value is disabled.
type Tolerance struct {
	value  float64
	active bool
}

// NewTolerance returns an active tolerance for finite non-negative x.
// NaN, ±Inf and negative values all yield a disabled tolerance.
func NewTolerance(x float64) Tolerance {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return Disabled()
	}
	return Tolerance{value: x, active: true}
}

// Disabled returns a tolerance that turns filtering off.
func Disabled() Tolerance {
	return Tolerance{}
}

// Value reports the threshold and whether filtering is active.
func (t Tolerance) Value() (float64, bool) {
	return t.value, t.active
}

func (t Tolerance) Active() bool {
	return t.active
}

func (t Tolerance) String() string {
	if !t.active {
		return "disabled"
	}
	return strconv.FormatFloat(t.value, 'g', -1, 64)
}
