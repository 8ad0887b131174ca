package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// MaxComponent returns the largest of the given values.
func MaxComponent[T constraints.Ordered](first T, rest ...T) T {
	out := first
	for _, v := range rest {
		if v > out {
			out = v
		}
	}
	return out
}

// MinComponent returns the smallest of the given values.
func MinComponent[T constraints.Ordered](first T, rest ...T) T {
	out := first
	for _, v := range rest {
		if v < out {
			out = v
		}
	}
	return out
}
