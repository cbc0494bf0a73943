package cpu

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

// SequenceMask builds a [B, maxLen] tensor of dtype whose entry (b, t) is 1
// when t < lengths[b] and 0 otherwise. lengths must be a rank-1 integer tensor.
//
// Example:
//
//	lengths := tensor.MustFromSlice([]int32{3, 1}, tensor.Shape{2})
//	backend.SequenceMask(lengths, 3, tensor.Float32) // [[1, 1, 1], [1, 0, 0]]
func (cpu *CPUBackend) SequenceMask(lengths *tensor.RawTensor, maxLen int, dtype tensor.DataType) *tensor.RawTensor {
	if lengths.Rank() != 1 {
		panic(fmt.Sprintf("sequence_mask: lengths must be 1D, got shape %v", lengths.Shape()))
	}
	if !lengths.DType().IsInteger() {
		panic(fmt.Sprintf("sequence_mask: lengths must be an integer tensor, got %s", lengths.DType()))
	}
	if maxLen < 0 {
		panic(fmt.Sprintf("sequence_mask: negative maxLen %d", maxLen))
	}

	batch := lengths.Shape()[0]
	mask := make([]float64, batch*maxLen)
	for b, l := range lengths.Ints() {
		for t := 0; t < maxLen && t < l; t++ {
			mask[b*maxLen+t] = 1
		}
	}

	return cpu.Cast(tensor.MustFromSlice(mask, tensor.Shape{batch, maxLen}), dtype)
}

// Where returns x where cond is nonzero and otherwise everywhere else.
// cond may have any dtype and broadcasts against x; the result has the
// broadcast shape and x's dtype. Entries dropped by cond never reach the
// result, Inf and NaN included.
//
// Example:
//
//	x := tensor.MustFromSlice([]float64{1, math.Inf(1)}, tensor.Shape{1, 2})
//	mask := tensor.MustFromSlice([]float64{1, 0}, tensor.Shape{1, 2})
//	backend.Where(mask, x, 0) // [[1, 0]]
func (cpu *CPUBackend) Where(cond, x *tensor.RawTensor, otherwise float64) *tensor.RawTensor {
	outShape, _, err := tensor.BroadcastShapes(cond.Shape(), x.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}
	result := tensor.MustNewRaw(outShape, x.DType())

	keep := cond.Float64s()
	outStrides := outShape.ComputeStrides()
	condStrides := broadcastStrides(cond.Shape(), outShape)
	xStrides := broadcastStrides(x.Shape(), outShape)

	switch x.DType() {
	case tensor.Float32:
		whereApply(result, x, keep, outStrides, condStrides, xStrides, float32(otherwise))
	case tensor.Float64:
		whereApply(result, x, keep, outStrides, condStrides, xStrides, otherwise)
	case tensor.Int32:
		whereApply(result, x, keep, outStrides, condStrides, xStrides, int32(otherwise))
	case tensor.Int64:
		whereApply(result, x, keep, outStrides, condStrides, xStrides, int64(otherwise))
	default:
		panic(fmt.Sprintf("where: unsupported dtype %s", x.DType()))
	}
	return result
}

func whereApply[T tensor.DType](result, x *tensor.RawTensor, keep []float64, outStrides, condStrides, xStrides []int, otherwise T) {
	dst := tensor.As[T](result)
	src := tensor.As[T](x)
	for i := range dst {
		if keep[sourceIndex(i, outStrides, condStrides)] != 0 {
			dst[i] = src[sourceIndex(i, outStrides, xStrides)]
		} else {
			dst[i] = otherwise
		}
	}
}
