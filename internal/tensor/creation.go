package tensor

import "fmt"

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrInvalidShape, shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	copy(view[T](raw), data)
	return raw, nil
}

// MustFromSlice is like FromSlice but panics on a shape mismatch.
// Intended for tests and literals.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	raw, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return raw
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return MustNewRaw(shape, dtype)
}

// Full creates a tensor filled with value converted to dtype.
//
// Example:
//
//	t := tensor.Full(tensor.Shape{2, 3}, tensor.Float32, 1)
func Full(shape Shape, dtype DataType, value float64) *RawTensor {
	t := MustNewRaw(shape, dtype)
	switch dtype {
	case Float32:
		fill(t.AsFloat32(), float32(value))
	case Float64:
		fill(t.AsFloat64(), value)
	case Int32:
		fill(t.AsInt32(), int32(value))
	case Int64:
		fill(t.AsInt64(), int64(value))
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *RawTensor {
	return Full(shape, dtype, 1)
}

// Scalar creates a 0-D tensor holding value.
func Scalar(value float64, dtype DataType) *RawTensor {
	return Full(Shape{}, dtype, value)
}

func fill[T DType](data []T, v T) {
	for i := range data {
		data[i] = v
	}
}

// FromValue converts a Go value into a tensor.
//
// Accepted values are a *RawTensor (returned as is), flat slices of float32,
// float64, int, int32 or int64 (rank 1), slices of such slices (rank 2) and
// slices of rank-2 values (rank 3). Nested rows must have equal lengths.
// Go int is stored as Int64.
func FromValue(v any) (*RawTensor, error) {
	switch x := v.(type) {
	case *RawTensor:
		if x == nil {
			return nil, fmt.Errorf("%w: nil tensor", ErrUnsupportedValue)
		}
		return x, nil
	case []float32:
		return FromSlice(x, Shape{len(x)})
	case []float64:
		return FromSlice(x, Shape{len(x)})
	case []int32:
		return FromSlice(x, Shape{len(x)})
	case []int64:
		return FromSlice(x, Shape{len(x)})
	case []int:
		return FromSlice(widen(x), Shape{len(x)})
	case [][]float32:
		return fromRows(x)
	case [][]float64:
		return fromRows(x)
	case [][]int32:
		return fromRows(x)
	case [][]int64:
		return fromRows(x)
	case [][]int:
		rows := make([][]int64, len(x))
		for i, row := range x {
			rows[i] = widen(row)
		}
		return fromRows(rows)
	case [][][]float32:
		return fromCube(x)
	case [][][]float64:
		return fromCube(x)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func widen(xs []int) []int64 {
	out := make([]int64, len(xs))
	for i, v := range xs {
		out[i] = int64(v)
	}
	return out
}

func fromRows[T DType](rows [][]T) (*RawTensor, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	flat := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d elements, row 0 has %d", ErrRaggedSlice, i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return FromSlice(flat, Shape{len(rows), cols})
}

func fromCube[T DType](cube [][][]T) (*RawTensor, error) {
	var rows, cols int
	if len(cube) > 0 {
		rows = len(cube[0])
		if rows > 0 {
			cols = len(cube[0][0])
		}
	}
	flat := make([]T, 0, len(cube)*rows*cols)
	for i, plane := range cube {
		if len(plane) != rows {
			return nil, fmt.Errorf("%w: plane %d has %d rows, plane 0 has %d", ErrRaggedSlice, i, len(plane), rows)
		}
		for j, row := range plane {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: row [%d][%d] has %d elements, want %d", ErrRaggedSlice, i, j, len(row), cols)
			}
			flat = append(flat, row...)
		}
	}
	return FromSlice(flat, Shape{len(cube), rows, cols})
}
