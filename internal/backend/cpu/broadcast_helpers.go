package cpu

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

// broadcastStrides returns strides that read a tensor of shape in as if it
// had shape out. Leading dimensions missing from in and dimensions of size 1
// get stride 0, so every output index maps back onto an existing element.
func broadcastStrides(in, out tensor.Shape) []int {
	strides := make([]int, len(out))
	inStrides := in.ComputeStrides()
	offset := len(out) - len(in)

	for i := offset; i < len(out); i++ {
		if in[i-offset] != 1 {
			strides[i] = inStrides[i-offset]
		}
	}
	return strides
}

// sourceIndex maps the flat index of a broadcast result (laid out by
// outStrides) to the flat index of an operand read through strides.
func sourceIndex(outIdx int, outStrides, strides []int) int {
	idx := 0
	for i, stride := range outStrides {
		idx += (outIdx / stride) * strides[i]
		outIdx %= stride
	}
	return idx
}

// forEachLine calls fn once for every 1-D line of a tensor of the given shape
// running along axis. base is the flat offset of the line's first element and
// step the distance between consecutive elements of the line.
func forEachLine(shape tensor.Shape, axis int, fn func(base, step, n int)) {
	outer := 1
	for _, d := range shape[:axis] {
		outer *= d
	}
	inner := 1
	for _, d := range shape[axis+1:] {
		inner *= d
	}
	n := shape[axis]
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			fn(o*n*inner+i, inner, n)
		}
	}
}

// normalizeAxis resolves negative axes and panics when out of range.
func normalizeAxis(op string, axis, ndim int) int {
	if axis < 0 {
		axis += ndim
	}
	if axis < 0 || axis >= ndim {
		panic(fmt.Sprintf("%s: axis %d out of range for %dD tensor", op, axis, ndim))
	}
	return axis
}
