package compute

import (
	"github.com/born-ml/rewards/internal/backend/cpu"
	"github.com/born-ml/rewards/internal/tensor"
)

// Eager provides Ops on concrete tensors through the CPU backend.
// Every call computes its result before returning.
type Eager struct {
	*cpu.CPUBackend
}

var _ Ops[*tensor.RawTensor] = Eager{}

// NewEager creates an eager provider backed by a fresh CPU backend.
func NewEager() Eager {
	return Eager{CPUBackend: cpu.New()}
}

// DType returns the element type of x.
func (Eager) DType(x *tensor.RawTensor) tensor.DataType { return x.DType() }

// Rank returns the number of dimensions of x.
func (Eager) Rank(x *tensor.RawTensor) int { return x.Rank() }

// Fill returns a tensor of dtype filled with value.
func (Eager) Fill(dtype tensor.DataType, value float64, dims ...*tensor.RawTensor) *tensor.RawTensor {
	shape := make(tensor.Shape, len(dims))
	for i, d := range dims {
		shape[i] = int(d.Item())
	}
	return tensor.Full(shape, dtype, value)
}

// SequenceMask returns the [B, maxLen] length mask.
func (e Eager) SequenceMask(lengths, maxLen *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return e.CPUBackend.SequenceMask(lengths, int(maxLen.Item()), dtype)
}

// Scan runs the fold immediately. There is no gradient tracking in eager
// mode, so backProp has no effect.
func (e Eager) Scan(elems, init *tensor.RawTensor, step func(acc, cur *tensor.RawTensor) *tensor.RawTensor, _ bool) *tensor.RawTensor {
	return e.CPUBackend.Scan(elems, init, step)
}
