// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32, Float64, Int32 and Int64 support
//   - NumPy-compatible broadcasting
//   - Forward and reverse cumulative sums and products
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/rewards/backend/cpu"
//	    "github.com/born-ml/rewards/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    lengths := tensor.MustFromSlice([]int32{3, 1}, tensor.Shape{2})
//	    mask := backend.SequenceMask(lengths, 3, tensor.Float32) // [[1, 1, 1], [1, 0, 0]]
//	}
//
// # Errors
//
// Operations panic on misuse (mismatched dtypes, shapes that do not
// broadcast, out-of-range axes). Validate inputs first or use the rewards
// package, which returns errors.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
