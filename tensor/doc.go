// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense tensors used by the rewards package.
//
// # Overview
//
// A RawTensor is contiguous row-major storage with:
//   - A Shape (rank 0 up to any rank, zero-sized dimensions allowed)
//   - A DataType (float32, float64, int32, int64)
//   - Typed views (AsFloat32, AsFloat64, AsInt32, AsInt64)
//
// # Basic Usage
//
//	import "github.com/born-ml/rewards/tensor"
//
//	func main() {
//	    reward := tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3})
//	    lengths, _ := tensor.FromValue([]int{3})
//
//	    fmt.Println(reward.Rows(), lengths.Ints())
//	}
//
// # Conversion
//
// FromValue accepts the Go containers callers usually hold rewards in:
// flat slices become rank-1 tensors and slices of equal-length slices become
// rank-2 tensors. Go int values are stored as Int64.
//
// # Broadcasting
//
// Binary operations follow NumPy broadcasting rules: shapes are aligned from
// the trailing dimension and dimensions of size 1 are stretched.
package tensor
