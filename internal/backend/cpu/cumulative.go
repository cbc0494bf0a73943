package cpu

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

// CumSum computes the cumulative sum along axis.
// With reverse set the sum runs from the end of the axis toward the front,
// so element t holds the sum of elements t..n-1.
//
// Example:
//
//	x := tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{1, 3})
//	backend.CumSum(x, 1, true) // [[6, 5, 3]]
func (cpu *CPUBackend) CumSum(x *tensor.RawTensor, axis int, reverse bool) *tensor.RawTensor {
	return cpu.cumulative("cumsum", opAdd, x, axis, reverse)
}

// CumProd computes the cumulative product along axis.
// With reverse set the product runs from the end of the axis toward the front.
func (cpu *CPUBackend) CumProd(x *tensor.RawTensor, axis int, reverse bool) *tensor.RawTensor {
	return cpu.cumulative("cumprod", opMul, x, axis, reverse)
}

func (cpu *CPUBackend) cumulative(name string, kind binaryKind, x *tensor.RawTensor, axis int, reverse bool) *tensor.RawTensor {
	axis = normalizeAxis(name, axis, x.Rank())
	result := tensor.MustNewRaw(x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		scanLines(result, x, axis, reverse, arith[float32](kind))
	case tensor.Float64:
		scanLines(result, x, axis, reverse, arith[float64](kind))
	case tensor.Int32:
		scanLines(result, x, axis, reverse, arith[int32](kind))
	case tensor.Int64:
		scanLines(result, x, axis, reverse, arith[int64](kind))
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

func scanLines[T tensor.DType](result, x *tensor.RawTensor, axis int, reverse bool, op func(acc, v T) T) {
	src := tensor.As[T](x)
	dst := tensor.As[T](result)

	forEachLine(x.Shape(), axis, func(base, step, n int) {
		if n == 0 {
			return
		}
		first, last, dir := 0, n-1, 1
		if reverse {
			first, last, dir = n-1, 0, -1
		}
		acc := src[base+first*step]
		dst[base+first*step] = acc
		for t := first + dir; t != last+dir; t += dir {
			acc = op(acc, src[base+t*step])
			dst[base+t*step] = acc
		}
	})
}

// Reverse flips the order of elements along axis.
func (cpu *CPUBackend) Reverse(x *tensor.RawTensor, axis int) *tensor.RawTensor {
	axis = normalizeAxis("reverse", axis, x.Rank())
	result := tensor.MustNewRaw(x.Shape(), x.DType())

	size := x.DType().Size()
	src := x.Data()
	dst := result.Data()

	forEachLine(x.Shape(), axis, func(base, step, n int) {
		for t := 0; t < n; t++ {
			from := (base + t*step) * size
			to := (base + (n-1-t)*step) * size
			copy(dst[to:to+size], src[from:from+size])
		}
	})

	return result
}
