// Package shapes holds shape utilities shared by the eager and deferred
// reward kernels.
package shapes

import (
	"fmt"

	"github.com/born-ml/rewards/internal/compute"
	"github.com/born-ml/rewards/internal/tensor"
)

// MaskSequences zeroes every entry of values whose time index (axis 1) is at
// or beyond the row's entry in lengths. values must have rank >= 2; the
// [B, T] mask is broadcast over any trailing dimensions. values is cast to
// dtype first. Masked entries are exactly zero whatever they held, Inf and
// NaN included.
//
// Example:
//
//	values:  [[1, 2, 3], [4, 5, 6]]
//	lengths: [2, 1]
//	result:  [[1, 2, 0], [4, 0, 0]]
func MaskSequences[V any](o compute.Ops[V], values, lengths V, dtype tensor.DataType) V {
	rank := o.Rank(values)
	if rank < 2 {
		panic(fmt.Sprintf("mask_sequences: values must have rank >= 2, got %d", rank))
	}

	values = o.Cast(values, dtype)
	mask := o.SequenceMask(lengths, o.Dim(values, 1), dtype)
	for r := 2; r < rank; r++ {
		mask = o.Unsqueeze(mask, -1)
	}
	return o.Where(mask, values, 0)
}
