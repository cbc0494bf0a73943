package cpu

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

// Transpose transposes the tensor by permuting its dimensions.
// With no axes the dimension order is reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result := tensor.MustNewRaw(newShape, t.DType())
	transposeData(result, t, axes)

	return result
}

// transposeData copies src into dst element by element, mapping each output
// coordinate back through the permutation.
func transposeData(dst, src *tensor.RawTensor, axes []int) {
	size := src.DType().Size()
	srcStrides := src.Strides()
	dstShape := dst.Shape()
	dstStrides := dst.Strides()
	srcData := src.Data()
	dstData := dst.Data()

	for i := 0; i < dst.NumElements(); i++ {
		rem := i
		srcIdx := 0
		for d := range dstShape {
			coord := rem / dstStrides[d]
			rem %= dstStrides[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		copy(dstData[i*size:(i+1)*size], srcData[srcIdx*size:(srcIdx+1)*size])
	}
}

// Unsqueeze adds a dimension of size 1 at the specified position.
//
// Supports negative dim indexing.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2}, tensor.Float32)
//	y := backend.Unsqueeze(x, -1)  // Shape: [2, 1]
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// Normalize negative dimension (for unsqueeze, valid range is [0, ndim])
	if dim < 0 {
		dim = ndim + 1 + dim
	}

	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("unsqueeze: dimension %d out of range for %dD tensor (valid: [0, %d])", dim, ndim, ndim))
	}

	newShape := make(tensor.Shape, 0, ndim+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)

	result, err := x.Reshaped(newShape)
	if err != nil {
		panic(fmt.Sprintf("unsqueeze: %v", err))
	}
	return result
}

// Select returns the i-th slice of x along its first axis.
// The result has rank one less than x.
func (cpu *CPUBackend) Select(x *tensor.RawTensor, i int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		panic("select: cannot index a 0-D tensor")
	}
	if i < 0 || i >= shape[0] {
		panic(fmt.Sprintf("select: index %d out of range for dimension of size %d", i, shape[0]))
	}

	result := tensor.MustNewRaw(shape[1:], x.DType())
	n := result.ByteSize()
	copy(result.Data(), x.Data()[i*n:(i+1)*n])
	return result
}

// Dim returns the size of dimension axis as a 0-D Int64 tensor.
func (cpu *CPUBackend) Dim(x *tensor.RawTensor, axis int) *tensor.RawTensor {
	axis = normalizeAxis("dim", axis, x.Rank())
	return tensor.Scalar(float64(x.Shape()[axis]), tensor.Int64)
}
