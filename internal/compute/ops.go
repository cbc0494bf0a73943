// Package compute defines the array capabilities the reward kernels are
// written against, and the two providers that supply them: Eager computes
// immediately on concrete tensors, Deferred records graph nodes.
//
// A kernel written once as a generic function over Ops[V] runs unchanged in
// both execution modes.
package compute

import "github.com/born-ml/rewards/internal/tensor"

// Ops is the set of array operations available to kernels. V is the value
// representation: *tensor.RawTensor for Eager, *graph.Node for Deferred.
//
// Binary operations broadcast NumPy-style and require equal dtypes.
// Scalars are converted to the operand's dtype.
type Ops[V any] interface {
	// DType returns the element type of x.
	DType(x V) tensor.DataType
	// Rank returns the number of dimensions of x.
	Rank(x V) int

	Add(a, b V) V
	Sub(a, b V) V
	Mul(a, b V) V
	Div(a, b V) V
	AddScalar(x V, s float64) V
	MulScalar(x V, s float64) V
	Sqrt(x V) V
	Cast(x V, dtype tensor.DataType) V

	// Mean and Max reduce over every element to a 0-D value.
	Mean(x V) V
	Max(x V) V

	CumSum(x V, axis int, reverse bool) V
	CumProd(x V, axis int, reverse bool) V
	Reverse(x V, axis int) V
	Transpose(x V, axes ...int) V
	Unsqueeze(x V, dim int) V

	// Dim returns the size of x along axis as a 0-D integer value.
	Dim(x V, axis int) V
	// Fill returns a value of dtype filled with value, shaped by the 0-D
	// integer values dims.
	Fill(dtype tensor.DataType, value float64, dims ...V) V
	// SequenceMask returns [B, maxLen] holding 1 where t < lengths[b].
	SequenceMask(lengths, maxLen V, dtype tensor.DataType) V
	// Where keeps x where cond is nonzero and puts otherwise elsewhere.
	// cond broadcasts against x.
	Where(cond, x V, otherwise float64) V

	// Scan folds step over the first axis of elems starting from init and
	// stacks every accumulator. backProp=false asks the provider to block
	// gradients through the accumulator where it tracks gradients at all.
	Scan(elems, init V, step func(acc, cur V) V, backProp bool) V
}
