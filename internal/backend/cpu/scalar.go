package cpu

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.
// The scalar is converted to the tensor's dtype before use.

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.scalar(opAdd, x, scalar)
}

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.scalar(opMul, x, scalar)
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.scalar(opDiv, x, scalar)
}

func (cpu *CPUBackend) scalar(kind binaryKind, x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("%sScalar: failed to create result tensor: %v", kind, err))
	}

	switch x.DType() {
	case tensor.Float32:
		scalarApply(result, x, float32(s), arith[float32](kind))
	case tensor.Float64:
		scalarApply(result, x, s, arith[float64](kind))
	case tensor.Int32:
		scalarApply(result, x, int32(s), arith[int32](kind))
	case tensor.Int64:
		scalarApply(result, x, int64(s), arith[int64](kind))
	default:
		panic(fmt.Sprintf("%sScalar: unsupported dtype %v", kind, x.DType()))
	}

	return result
}

func scalarApply[T tensor.DType](result, x *tensor.RawTensor, s T, op func(x, y T) T) {
	dst := tensor.As[T](result)
	for i, v := range tensor.As[T](x) {
		dst[i] = op(v, s)
	}
}
