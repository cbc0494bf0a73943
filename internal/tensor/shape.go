package tensor

import (
	"fmt"
	"slices"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no dimension is negative.
// Zero-sized dimensions are allowed: a batch whose sequences are all empty
// produces a [B, 0] result.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: dimension %d is %d (must be >= 0)", ErrInvalidShape, i, dim)
		}
	}
	return nil
}

// Equal reports whether both shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape. Clone of a nil shape is an empty,
// non-nil shape so rank-0 tensors never alias each other's shape.
func (s Shape) Clone() Shape {
	return append(Shape{}, s...)
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes aligns a and b from the trailing dimension; a pair of
// dimensions is compatible when equal or when one of them is 1, and missing
// leading dimensions count as 1. The second result reports whether any
// operand has to be stretched.
//
//	(B, T) * (B, 1) -> (B, T), true
//	(B, T) * ()     -> (B, T), true
//	(B, T) * (B, T) -> (B, T), false
//	(2, 3) * (3, 3) -> ErrInvalidShape
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := range maxLen {
		aDim, bDim := dimFromEnd(a, i), dimFromEnd(b, i)
		out := maxLen - 1 - i

		switch {
		case aDim == bDim:
			result[out] = aDim
		case aDim == 1:
			result[out] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[out] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("%w: cannot broadcast %v with %v (dimension %d: %d vs %d)",
				ErrInvalidShape, a, b, out, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// dimFromEnd returns the i-th dimension counted from the last one, 1 past
// the front of s.
func dimFromEnd(s Shape, i int) int {
	if j := len(s) - 1 - i; j >= 0 {
		return s[j]
	}
	return 1
}
