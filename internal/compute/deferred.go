package compute

import (
	"github.com/born-ml/rewards/internal/graph"
	"github.com/born-ml/rewards/internal/tensor"
)

// Deferred provides Ops by recording nodes; nothing is computed until a
// graph.Executor runs the result. Nodes are recorded in the graph of their
// operands.
type Deferred struct{}

var _ Ops[*graph.Node] = Deferred{}

// DType returns the static element type of x.
func (Deferred) DType(x *graph.Node) tensor.DataType { return x.DType() }

// Rank returns the static rank of x.
func (Deferred) Rank(x *graph.Node) int { return x.Rank() }

// Add records a + b.
func (Deferred) Add(a, b *graph.Node) *graph.Node { return graph.Add(a, b) }

// Sub records a - b.
func (Deferred) Sub(a, b *graph.Node) *graph.Node { return graph.Sub(a, b) }

// Mul records a * b.
func (Deferred) Mul(a, b *graph.Node) *graph.Node { return graph.Mul(a, b) }

// Div records a / b.
func (Deferred) Div(a, b *graph.Node) *graph.Node { return graph.Div(a, b) }

// AddScalar records x + s.
func (Deferred) AddScalar(x *graph.Node, s float64) *graph.Node { return graph.AddScalar(x, s) }

// MulScalar records x * s.
func (Deferred) MulScalar(x *graph.Node, s float64) *graph.Node { return graph.MulScalar(x, s) }

// Sqrt records sqrt(x).
func (Deferred) Sqrt(x *graph.Node) *graph.Node { return graph.Sqrt(x) }

// Cast records a dtype conversion.
func (Deferred) Cast(x *graph.Node, dtype tensor.DataType) *graph.Node { return graph.Cast(x, dtype) }

// Mean records the global mean.
func (Deferred) Mean(x *graph.Node) *graph.Node { return graph.Mean(x) }

// Max records the global maximum.
func (Deferred) Max(x *graph.Node) *graph.Node { return graph.Max(x) }

// CumSum records a cumulative sum.
func (Deferred) CumSum(x *graph.Node, axis int, reverse bool) *graph.Node {
	return graph.CumSum(x, axis, reverse)
}

// CumProd records a cumulative product.
func (Deferred) CumProd(x *graph.Node, axis int, reverse bool) *graph.Node {
	return graph.CumProd(x, axis, reverse)
}

// Reverse records a flip along axis.
func (Deferred) Reverse(x *graph.Node, axis int) *graph.Node { return graph.Reverse(x, axis) }

// Transpose records a dimension permutation.
func (Deferred) Transpose(x *graph.Node, axes ...int) *graph.Node {
	return graph.Transpose(x, axes...)
}

// Unsqueeze records a new size-1 dimension.
func (Deferred) Unsqueeze(x *graph.Node, dim int) *graph.Node { return graph.Unsqueeze(x, dim) }

// Dim records the runtime size of x along axis.
func (Deferred) Dim(x *graph.Node, axis int) *graph.Node { return graph.Dim(x, axis) }

// Fill records a filled value shaped by dims.
func (Deferred) Fill(dtype tensor.DataType, value float64, dims ...*graph.Node) *graph.Node {
	return graph.Fill(dtype, value, dims...)
}

// SequenceMask records the [B, maxLen] length mask.
func (Deferred) SequenceMask(lengths, maxLen *graph.Node, dtype tensor.DataType) *graph.Node {
	return graph.SequenceMask(lengths, maxLen, dtype)
}

// Scan records a fold whose body is traced from step.
func (Deferred) Scan(elems, init *graph.Node, step func(acc, cur *graph.Node) *graph.Node, backProp bool) *graph.Node {
	return graph.Scan(elems, init, step, backProp)
}

// Where records a select against cond.
func (Deferred) Where(cond, x *graph.Node, otherwise float64) *graph.Node {
	return graph.Where(cond, x, otherwise)
}
