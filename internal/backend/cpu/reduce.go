package cpu

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

// Sum returns the sum of all elements as a 0-D tensor of the same dtype.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = float32(sumFloat(x.AsFloat32()))
	case tensor.Float64:
		result.AsFloat64()[0] = sumFloat(x.AsFloat64())
	case tensor.Int32:
		result.AsInt32()[0] = sumInt(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = sumInt(x.AsInt64())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

// Mean returns the mean of all elements as a 0-D tensor.
// Float tensors only; an empty tensor yields NaN.
//
// Example:
//
//	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	m := backend.Mean(x) // shape: [], value 2.5
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("mean: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	return cpu.DivScalar(cpu.Sum(x), float64(x.NumElements()))
}

// Max returns the largest element as a 0-D tensor of the same dtype.
// The maximum of an empty tensor is zero.
func (cpu *CPUBackend) Max(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = maxOf(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = maxOf(x.AsFloat64())
	case tensor.Int32:
		result.AsInt32()[0] = maxOf(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = maxOf(x.AsInt64())
	default:
		panic(fmt.Sprintf("max: unsupported dtype %s", x.DType()))
	}

	return result
}

// sumFloat accumulates in float64 so float32 sums keep their precision.
func sumFloat[T float32 | float64](data []T) float64 {
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	return sum
}

func sumInt[T int32 | int64](data []T) T {
	var sum T
	for _, v := range data {
		sum += v
	}
	return sum
}

func maxOf[T tensor.DType](data []T) T {
	var m T
	for i, v := range data {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
