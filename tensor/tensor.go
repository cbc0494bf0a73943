// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense tensors consumed and
// produced by the reward functions.
//
// The package defines core types:
//   - RawTensor: contiguous, row-major storage with a shape and a dtype
//   - Shape, DataType: core type definitions
//
// Example:
//
//	reward := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	lengths, err := tensor.FromValue([]int{2, 1})
package tensor

import (
	"github.com/born-ml/rewards/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int32, int64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a batch of 2 rows over 3 time steps.
type Shape = tensor.Shape

// RawTensor is a dense tensor. Reward functions never modify their inputs and
// always return freshly allocated tensors.
type RawTensor = tensor.RawTensor

// Errors returned by tensor construction.
var (
	ErrInvalidShape     = tensor.ErrInvalidShape
	ErrUnknownDataType  = tensor.ErrUnknownDataType
	ErrRaggedSlice      = tensor.ErrRaggedSlice
	ErrUnsupportedValue = tensor.ErrUnsupportedValue
)

// Creation functions

// NewRaw creates a zero-filled tensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	return tensor.MustFromSlice(data, shape)
}

// FromValue converts Go slices ([]float64, [][]float32, []int, ...) into a
// tensor. A *RawTensor is returned unchanged.
//
// Example:
//
//	reward, err := tensor.FromValue([][]float64{{1, 2, 3}, {4, 5, 6}})
func FromValue(v any) (*RawTensor, error) {
	return tensor.FromValue(v)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *RawTensor {
	return tensor.Ones(shape, dtype)
}

// Full creates a tensor filled with value converted to dtype.
func Full(shape Shape, dtype DataType, value float64) *RawTensor {
	return tensor.Full(shape, dtype, value)
}

// ParseDataType parses a dtype name such as "float32" or "f64".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}
