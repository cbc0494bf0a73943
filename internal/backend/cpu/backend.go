// Package cpu implements the eager CPU backend: every operation computes its
// result immediately on the calling goroutine.
package cpu

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// Operations never modify their operands; each call returns a freshly
// allocated tensor. Misuse (dtype or shape mismatch) panics with the
// operation name as prefix, the same way for every method.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

type binaryKind int

const (
	opAdd binaryKind = iota
	opSub
	opMul
	opDiv
)

func (k binaryKind) String() string {
	return [...]string{"add", "sub", "mul", "div"}[k]
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opAdd, a, b)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opSub, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opMul, a, b)
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opDiv, a, b)
}

func (cpu *CPUBackend) binary(kind binaryKind, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", kind, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", kind, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", kind, err))
	}

	switch a.DType() {
	case tensor.Float32:
		binaryApply(result, a, b, arith[float32](kind))
	case tensor.Float64:
		binaryApply(result, a, b, arith[float64](kind))
	case tensor.Int32:
		binaryApply(result, a, b, arith[int32](kind))
	case tensor.Int64:
		binaryApply(result, a, b, arith[int64](kind))
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", kind, a.DType()))
	}

	return result
}

func arith[T tensor.DType](kind binaryKind) func(x, y T) T {
	switch kind {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	default:
		return func(x, y T) T { return x / y }
	}
}

// binaryApply fills result with op(a, b), broadcasting operands whose shape
// differs from the result shape.
func binaryApply[T tensor.DType](result, a, b *tensor.RawTensor, op func(x, y T) T) {
	dst := tensor.As[T](result)
	aData := tensor.As[T](a)
	bData := tensor.As[T](b)

	// Fast path: no broadcasting.
	if a.Shape().Equal(b.Shape()) {
		for i := range dst {
			dst[i] = op(aData[i], bData[i])
		}
		return
	}

	outShape := result.Shape()
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	for i := range dst {
		dst[i] = op(aData[sourceIndex(i, outStrides, aStrides)], bData[sourceIndex(i, outStrides, bStrides)])
	}
}
