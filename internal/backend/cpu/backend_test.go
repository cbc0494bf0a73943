package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/rewards/internal/tensor"
)

func assertFloat64s(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length %d, want %d (got %v)", name, len(got), len(want), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestBinaryOps(t *testing.T) {
	backend := New()
	a := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := tensor.MustFromSlice([]float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	tests := []struct {
		name string
		got  *tensor.RawTensor
		want []float64
	}{
		{"add", backend.Add(a, b), []float64{11, 22, 33, 44}},
		{"sub", backend.Sub(b, a), []float64{9, 18, 27, 36}},
		{"mul", backend.Mul(a, b), []float64{10, 40, 90, 160}},
		{"div", backend.Div(b, a), []float64{10, 10, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.DType() != tensor.Float32 {
				t.Errorf("dtype = %s, want float32", tt.got.DType())
			}
			assertFloat64s(t, tt.name, tt.got.Float64s(), tt.want)
		})
	}

	assertFloat64s(t, "a unchanged", a.Float64s(), []float64{1, 2, 3, 4})
}

func TestBinaryBroadcast(t *testing.T) {
	backend := New()

	// [2, 3] * [2, 1]: scale each row.
	x := tensor.MustFromSlice([]float64{1, 1, 1, 2, 2, 2}, tensor.Shape{2, 3})
	col := tensor.MustFromSlice([]float64{3, 5}, tensor.Shape{2, 1})
	got := backend.Mul(x, col)
	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", got.Shape())
	}
	assertFloat64s(t, "row scale", got.Float64s(), []float64{3, 3, 3, 10, 10, 10})

	// 0-D scalar against a matrix.
	got = backend.Sub(x, tensor.Scalar(1, tensor.Float64))
	assertFloat64s(t, "scalar sub", got.Float64s(), []float64{0, 0, 0, 1, 1, 1})
}

func TestBinaryDTypeMismatchPanics(t *testing.T) {
	backend := New()
	defer func() {
		if recover() == nil {
			t.Error("Add with mismatched dtypes should panic")
		}
	}()
	backend.Add(tensor.Zeros(tensor.Shape{2}, tensor.Float32), tensor.Zeros(tensor.Shape{2}, tensor.Float64))
}

func TestScalarOps(t *testing.T) {
	backend := New()
	x := tensor.MustFromSlice([]float64{1, 2, 4}, tensor.Shape{3})

	assertFloat64s(t, "AddScalar", backend.AddScalar(x, 1).Float64s(), []float64{2, 3, 5})
	assertFloat64s(t, "MulScalar", backend.MulScalar(x, 0.5).Float64s(), []float64{0.5, 1, 2})
	assertFloat64s(t, "DivScalar", backend.DivScalar(x, 2).Float64s(), []float64{0.5, 1, 2})

	lengths := tensor.MustFromSlice([]int64{3, 2}, tensor.Shape{2})
	shifted := backend.AddScalar(lengths, -1)
	if got := shifted.AsInt64(); got[0] != 2 || got[1] != 1 {
		t.Errorf("AddScalar on int64 = %v, want [2 1]", got)
	}
}

func TestSqrtAndCast(t *testing.T) {
	backend := New()
	x := tensor.MustFromSlice([]float32{4, 9}, tensor.Shape{2})
	assertFloat64s(t, "Sqrt", backend.Sqrt(x).Float64s(), []float64{2, 3})

	cast := backend.Cast(tensor.MustFromSlice([]float64{1.7, -2.2}, tensor.Shape{2}), tensor.Int32)
	if got := cast.AsInt32(); got[0] != 1 || got[1] != -2 {
		t.Errorf("Cast to int32 = %v, want [1 -2]", got)
	}
	if same := backend.Cast(x, tensor.Float32); same != x {
		t.Error("Cast to the same dtype should return the input")
	}
}

func TestReductions(t *testing.T) {
	backend := New()
	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	sum := backend.Sum(x)
	if len(sum.Shape()) != 0 || sum.Item() != 10 {
		t.Errorf("Sum = %v (shape %v), want 10", sum.Item(), sum.Shape())
	}
	if mean := backend.Mean(x).Item(); mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", mean)
	}

	lengths := tensor.MustFromSlice([]int32{3, 7, 2}, tensor.Shape{3})
	if m := backend.Max(lengths).Item(); m != 7 {
		t.Errorf("Max = %v, want 7", m)
	}
	if m := backend.Max(tensor.Zeros(tensor.Shape{0}, tensor.Int64)).Item(); m != 0 {
		t.Errorf("Max of empty = %v, want 0", m)
	}
}

func TestCumulative(t *testing.T) {
	backend := New()
	x := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	tests := []struct {
		name string
		got  *tensor.RawTensor
		want []float64
	}{
		{"cumsum axis 1", backend.CumSum(x, 1, false), []float64{1, 3, 6, 4, 9, 15}},
		{"cumsum axis 1 reverse", backend.CumSum(x, 1, true), []float64{6, 5, 3, 15, 11, 6}},
		{"cumsum axis 0", backend.CumSum(x, 0, false), []float64{1, 2, 3, 5, 7, 9}},
		{"cumprod axis -1", backend.CumProd(x, -1, false), []float64{1, 2, 6, 4, 20, 120}},
		{"cumprod reverse", backend.CumProd(x, 1, true), []float64{6, 6, 3, 120, 30, 6}},
		{"reverse axis 1", backend.Reverse(x, 1), []float64{3, 2, 1, 6, 5, 4}},
		{"reverse axis 0", backend.Reverse(x, 0), []float64{4, 5, 6, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFloat64s(t, tt.name, tt.got.Float64s(), tt.want)
		})
	}

	empty := backend.CumSum(tensor.Zeros(tensor.Shape{2, 0}, tensor.Float64), 1, true)
	if !empty.Shape().Equal(tensor.Shape{2, 0}) {
		t.Errorf("CumSum on [2 0] shape = %v", empty.Shape())
	}
}

func TestTransposeUnsqueezeSelect(t *testing.T) {
	backend := New()
	x := tensor.MustFromSlice([]int32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	tr := backend.Transpose(x)
	if !tr.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Transpose shape = %v, want [3 2]", tr.Shape())
	}
	assertFloat64s(t, "Transpose", tr.Float64s(), []float64{1, 4, 2, 5, 3, 6})

	col := backend.Unsqueeze(tensor.MustFromSlice([]float32{1, 2}, tensor.Shape{2}), -1)
	if !col.Shape().Equal(tensor.Shape{2, 1}) {
		t.Errorf("Unsqueeze shape = %v, want [2 1]", col.Shape())
	}

	row := backend.Select(x, 1)
	if !row.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("Select shape = %v, want [3]", row.Shape())
	}
	assertFloat64s(t, "Select", row.Float64s(), []float64{4, 5, 6})

	if d := backend.Dim(x, 1).Item(); d != 3 {
		t.Errorf("Dim(x, 1) = %v, want 3", d)
	}
}

func TestSequenceMask(t *testing.T) {
	backend := New()
	lengths := tensor.MustFromSlice([]int64{3, 1, 0, 5}, tensor.Shape{4})

	mask := backend.SequenceMask(lengths, 3, tensor.Float32)
	if !mask.Shape().Equal(tensor.Shape{4, 3}) {
		t.Fatalf("shape = %v, want [4 3]", mask.Shape())
	}
	assertFloat64s(t, "mask", mask.Float64s(), []float64{
		1, 1, 1,
		1, 0, 0,
		0, 0, 0,
		1, 1, 1,
	})

	// Negative lengths mask the whole row.
	neg := backend.SequenceMask(tensor.MustFromSlice([]int32{-1}, tensor.Shape{1}), 2, tensor.Float64)
	assertFloat64s(t, "negative length", neg.Float64s(), []float64{0, 0})
}

func TestScan(t *testing.T) {
	backend := New()
	// Time-major [3, 2].
	elems := tensor.MustFromSlice([]float64{1, 10, 2, 20, 3, 30}, tensor.Shape{3, 2})
	before := elems.Float64s()

	out := backend.Scan(elems, tensor.Zeros(tensor.Shape{2}, tensor.Float64), func(acc, cur *tensor.RawTensor) *tensor.RawTensor {
		return backend.Add(cur, backend.MulScalar(acc, 0.5))
	})

	if !out.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", out.Shape())
	}
	assertFloat64s(t, "scan", out.Float64s(), []float64{1, 10, 2.5, 25, 4.25, 42.5})
	assertFloat64s(t, "elems unchanged", elems.Float64s(), before)

	empty := backend.Scan(tensor.Zeros(tensor.Shape{0, 2}, tensor.Float64), tensor.Zeros(tensor.Shape{2}, tensor.Float64), backend.Add)
	if !empty.Shape().Equal(tensor.Shape{0, 2}) {
		t.Errorf("empty scan shape = %v, want [0 2]", empty.Shape())
	}
}

func TestWhere(t *testing.T) {
	backend := New()
	inf := math.Inf(1)

	// [B=2, T=3] values with non-finite padding, [B, T] mask.
	x := tensor.MustFromSlice([]float64{1, inf, math.NaN(), -2, 3, -inf}, tensor.Shape{2, 3})
	mask := tensor.MustFromSlice([]float32{1, 0, 0, 1, 1, 0}, tensor.Shape{2, 3})

	got := backend.Where(mask, x, 0).AsFloat64()
	want := []float64{1, 0, 0, -2, 3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Where()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !math.IsInf(x.AsFloat64()[1], 1) {
		t.Error("Where modified its operand")
	}

	// The mask broadcasts over a trailing dimension.
	x3 := tensor.MustFromSlice([]int32{1, 2, 3, 4}, tensor.Shape{1, 2, 2})
	mask3 := tensor.MustFromSlice([]float64{0, 1}, tensor.Shape{1, 2, 1})
	got3 := backend.Where(mask3, x3, -1).AsInt32()
	if want3 := []int32{-1, -1, 3, 4}; got3[0] != want3[0] || got3[1] != want3[1] || got3[2] != want3[2] || got3[3] != want3[3] {
		t.Errorf("Where() with broadcast = %v, want %v", got3, want3)
	}
}

func TestWhereIncompatibleShapesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for incompatible shapes")
		}
	}()
	New().Where(tensor.Ones(tensor.Shape{2, 2}, tensor.Float32), tensor.Ones(tensor.Shape{3, 2}, tensor.Float32), 0)
}
