package graph

import (
	"fmt"

	"github.com/born-ml/rewards/internal/tensor"
)

type opType int

const (
	opPlaceholder opType = iota
	opConstant
	opAdd
	opSub
	opMul
	opDiv
	opAddScalar
	opMulScalar
	opSqrt
	opCast
	opMean
	opMax
	opCumSum
	opCumProd
	opReverse
	opTranspose
	opUnsqueeze
	opDim
	opSequenceMask
	opFill
	opWhere
	opScan
)

var opNames = [...]string{
	opPlaceholder:  "placeholder",
	opConstant:     "constant",
	opAdd:          "add",
	opSub:          "sub",
	opMul:          "mul",
	opDiv:          "div",
	opAddScalar:    "add_scalar",
	opMulScalar:    "mul_scalar",
	opSqrt:         "sqrt",
	opCast:         "cast",
	opMean:         "mean",
	opMax:          "max",
	opCumSum:       "cumsum",
	opCumProd:      "cumprod",
	opReverse:      "reverse",
	opTranspose:    "transpose",
	opUnsqueeze:    "unsqueeze",
	opDim:          "dim",
	opSequenceMask: "sequence_mask",
	opFill:         "fill",
	opWhere:        "where",
	opScan:         "scan",
}

func (op opType) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

func binary(op opType, a, b *Node) *Node {
	g := scope(op, a, b)
	if a.dtype != b.dtype {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.dtype, b.dtype))
	}
	return g.add(&Node{op: op, inputs: []*Node{a, b}, dtype: a.dtype, rank: max(a.rank, b.rank)})
}

// Add records element-wise addition with broadcasting.
func Add(a, b *Node) *Node { return binary(opAdd, a, b) }

// Sub records element-wise subtraction with broadcasting.
func Sub(a, b *Node) *Node { return binary(opSub, a, b) }

// Mul records element-wise multiplication with broadcasting.
func Mul(a, b *Node) *Node { return binary(opMul, a, b) }

// Div records element-wise division with broadcasting.
func Div(a, b *Node) *Node { return binary(opDiv, a, b) }

// AddScalar records x + s.
func AddScalar(x *Node, s float64) *Node {
	return scope(opAddScalar, x).add(&Node{op: opAddScalar, inputs: []*Node{x}, dtype: x.dtype, rank: x.rank, scalar: s})
}

// MulScalar records x * s.
func MulScalar(x *Node, s float64) *Node {
	return scope(opMulScalar, x).add(&Node{op: opMulScalar, inputs: []*Node{x}, dtype: x.dtype, rank: x.rank, scalar: s})
}

// Sqrt records the element-wise square root of a float node.
func Sqrt(x *Node) *Node {
	requireFloat(opSqrt, x)
	return scope(opSqrt, x).add(&Node{op: opSqrt, inputs: []*Node{x}, dtype: x.dtype, rank: x.rank})
}

// Cast records a conversion to dtype. Casting to the node's own dtype
// records nothing and returns x.
func Cast(x *Node, dtype tensor.DataType) *Node {
	if x.dtype == dtype {
		return x
	}
	return scope(opCast, x).add(&Node{op: opCast, inputs: []*Node{x}, dtype: dtype, rank: x.rank})
}

// Mean records the mean over all elements (a 0-D result).
func Mean(x *Node) *Node {
	requireFloat(opMean, x)
	return scope(opMean, x).add(&Node{op: opMean, inputs: []*Node{x}, dtype: x.dtype})
}

// Max records the maximum over all elements (a 0-D result).
func Max(x *Node) *Node {
	return scope(opMax, x).add(&Node{op: opMax, inputs: []*Node{x}, dtype: x.dtype})
}

// CumSum records a cumulative sum along axis, from the back when reverse is set.
func CumSum(x *Node, axis int, reverse bool) *Node {
	return alongAxis(opCumSum, x, axis, reverse)
}

// CumProd records a cumulative product along axis, from the back when reverse is set.
func CumProd(x *Node, axis int, reverse bool) *Node {
	return alongAxis(opCumProd, x, axis, reverse)
}

// Reverse records flipping x along axis.
func Reverse(x *Node, axis int) *Node {
	return alongAxis(opReverse, x, axis, false)
}

func alongAxis(op opType, x *Node, axis int, reverse bool) *Node {
	axis = checkAxis(op, axis, x.rank)
	return scope(op, x).add(&Node{op: op, inputs: []*Node{x}, dtype: x.dtype, rank: x.rank, axis: axis, reverse: reverse})
}

// Transpose records a permutation of x's dimensions. With no axes the
// dimension order is reversed.
func Transpose(x *Node, axes ...int) *Node {
	if len(axes) == 0 {
		axes = make([]int, x.rank)
		for i := range axes {
			axes[i] = x.rank - 1 - i
		}
	}
	if len(axes) != x.rank {
		panic(fmt.Sprintf("%s: axes length %d != rank %d", opTranspose, len(axes), x.rank))
	}
	return scope(opTranspose, x).add(&Node{op: opTranspose, inputs: []*Node{x}, dtype: x.dtype, rank: x.rank, perm: append([]int(nil), axes...)})
}

// Unsqueeze records inserting a size-1 dimension at dim (negative dims count
// from the end, -1 appends).
func Unsqueeze(x *Node, dim int) *Node {
	if dim < 0 {
		dim += x.rank + 1
	}
	if dim < 0 || dim > x.rank {
		panic(fmt.Sprintf("%s: dimension %d out of range for rank %d", opUnsqueeze, dim, x.rank))
	}
	return scope(opUnsqueeze, x).add(&Node{op: opUnsqueeze, inputs: []*Node{x}, dtype: x.dtype, rank: x.rank + 1, axis: dim})
}

// Dim records the runtime size of x along axis as a 0-D Int64 node.
func Dim(x *Node, axis int) *Node {
	axis = checkAxis(opDim, axis, x.rank)
	return scope(opDim, x).add(&Node{op: opDim, inputs: []*Node{x}, dtype: tensor.Int64, axis: axis})
}

// SequenceMask records a [B, maxLen] mask of dtype that is 1 where the time
// index is below the row's length. lengths is a rank-1 integer node and
// maxLen a 0-D integer node.
func SequenceMask(lengths, maxLen *Node, dtype tensor.DataType) *Node {
	if lengths.rank != 1 || !lengths.dtype.IsInteger() {
		panic(fmt.Sprintf("%s: lengths must be a rank-1 integer node, got %s", opSequenceMask, lengths))
	}
	requireIntScalar(opSequenceMask, maxLen)
	g := scope(opSequenceMask, lengths, maxLen)
	return g.add(&Node{op: opSequenceMask, inputs: []*Node{lengths, maxLen}, dtype: dtype, rank: 2})
}

// Fill records a tensor of dtype filled with value, whose dimensions are the
// runtime values of the 0-D integer nodes dims.
func Fill(dtype tensor.DataType, value float64, dims ...*Node) *Node {
	if len(dims) == 0 {
		panic(fmt.Sprintf("%s: at least one dimension is required", opFill))
	}
	for _, d := range dims {
		requireIntScalar(opFill, d)
	}
	g := scope(opFill, dims...)
	return g.add(&Node{op: opFill, inputs: append([]*Node(nil), dims...), dtype: dtype, rank: len(dims), scalar: value})
}

// Where records selecting x where cond is nonzero and otherwise elsewhere.
// cond broadcasts against x and may have any dtype; the result has x's dtype.
func Where(cond, x *Node, otherwise float64) *Node {
	g := scope(opWhere, cond, x)
	return g.add(&Node{op: opWhere, inputs: []*Node{cond, x}, dtype: x.dtype, rank: max(cond.rank, x.rank), scalar: otherwise})
}

func checkAxis(op opType, axis, rank int) int {
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		panic(fmt.Sprintf("%s: axis %d out of range for rank %d", op, axis, rank))
	}
	return axis
}

func requireFloat(op opType, x *Node) {
	if !x.dtype.IsFloat() {
		panic(fmt.Sprintf("%s: %s is not a float node", op, x))
	}
}

func requireIntScalar(op opType, x *Node) {
	if x.rank != 0 || !x.dtype.IsInteger() {
		panic(fmt.Sprintf("%s: %s must be a 0-D integer node", op, x))
	}
}
