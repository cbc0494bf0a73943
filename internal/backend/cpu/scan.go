package cpu

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

// Scan folds step over the slices of elems along its first axis.
//
// Starting from acc = init, for each i it computes acc = step(acc, elems[i])
// and stores acc as row i of the result, so the result has shape
// [len(elems)] + init.Shape(). Rows are written into a freshly allocated
// buffer; elems and init are never modified.
//
// Example (running sum of the rows of a [T, B] tensor):
//
//	zeros := tensor.Zeros(tensor.Shape{B}, tensor.Float64)
//	backend.Scan(x, zeros, backend.Add)
func (cpu *CPUBackend) Scan(elems, init *tensor.RawTensor, step func(acc, cur *tensor.RawTensor) *tensor.RawTensor) *tensor.RawTensor {
	if elems.Rank() == 0 {
		panic("scan: elems must have at least one dimension")
	}

	n := elems.Shape()[0]
	outShape := append(tensor.Shape{n}, init.Shape()...)
	result := tensor.MustNewRaw(outShape, init.DType())
	rowBytes := init.ByteSize()
	out := result.Data()

	acc := init
	for i := 0; i < n; i++ {
		acc = step(acc, cpu.Select(elems, i))
		if acc.DType() != init.DType() || !acc.Shape().Equal(init.Shape()) {
			panic(fmt.Sprintf("scan: step returned %s%v, want %s%v",
				acc.DType(), acc.Shape(), init.DType(), init.Shape()))
		}
		copy(out[i*rowBytes:(i+1)*rowBytes], acc.Data())
	}

	return result
}
