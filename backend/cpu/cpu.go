// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/rewards/internal/backend/cpu"
)

// Backend represents the CPU backend implementation.
//
// It provides pure Go implementations of the array operations the reward
// kernels are built from: broadcasting arithmetic, reductions, cumulative
// sums and products, sequence masks and scans.
type Backend = internalcpu.CPUBackend

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/rewards/backend/cpu"
//	    "github.com/born-ml/rewards/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3})
//	    returns := backend.CumSum(x, 1, true) // [[6, 5, 3]]
//	}
func New() *Backend {
	return internalcpu.New()
}
