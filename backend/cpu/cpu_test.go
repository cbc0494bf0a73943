// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/born-ml/rewards/backend/cpu"
	"github.com/born-ml/rewards/tensor"
)

func TestBackendReverseCumSum(t *testing.T) {
	backend := cpu.New()
	if backend.Name() == "" {
		t.Error("Name() is empty")
	}

	x := tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3})
	got := backend.CumSum(x, 1, true).AsFloat32()
	want := []float32{6, 5, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CumSum()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBackendSequenceMask(t *testing.T) {
	backend := cpu.New()
	lengths := tensor.MustFromSlice([]int32{3, 1}, tensor.Shape{2})

	mask := backend.SequenceMask(lengths, 3, tensor.Float64)
	want := [][]float64{{1, 1, 1}, {1, 0, 0}}
	for b, row := range mask.Rows() {
		for i, v := range row {
			if v != want[b][i] {
				t.Errorf("mask[%d][%d] = %v, want %v", b, i, v, want[b][i])
			}
		}
	}
}
