// Package rewards computes discounted cumulative returns from reward signals
// for policy-gradient training.
//
// A reward is either one scalar per sequence ([B], expanded across time by
// discounting from the last valid step) or a per-step matrix ([B, T],
// accumulated backwards in time). Both kernels run eagerly on concrete
// tensors or record a deferred graph, depending on the operands.
package rewards

import (
	"fmt"

	"github.com/born-ml/rewards/internal/compute"
	"github.com/born-ml/rewards/internal/graph"
	"github.com/born-ml/rewards/internal/tensor"
)

// Value is the result of DiscountReward: a *tensor.RawTensor in eager mode
// or a *graph.Node in deferred mode.
type Value interface {
	DType() tensor.DataType
	Rank() int
}

// DiscountReward computes discounted rewards, choosing the execution mode
// from the operands.
//
// If either reward or sequenceLength is a *graph.Node, the computation is
// recorded in that node's graph and a *graph.Node is returned; an eager
// operand is added to the graph as a constant once every input has been
// validated. Otherwise reward and sequenceLength are converted to tensors
// (Go slices are accepted) and a *tensor.RawTensor is returned.
//
// sequenceLength may be nil for a rank-2 reward.
func DiscountReward(reward, sequenceLength any, cfg Config) (Value, error) {
	rNode, rDeferred := reward.(*graph.Node)
	lNode, lDeferred := sequenceLength.(*graph.Node)

	if rDeferred || lDeferred {
		out, err := discountMixed(reward, sequenceLength, rNode, lNode, rDeferred, lDeferred, cfg)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	r, err := toTensor("reward", reward)
	if err != nil {
		return nil, err
	}
	var lengths *tensor.RawTensor
	if !absent(sequenceLength) {
		if lengths, err = toTensor("sequence length", sequenceLength); err != nil {
			return nil, err
		}
	}

	out, err := DiscountEager(r, lengths, cfg)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// discountMixed handles deferred mode. Eager operands are converted and
// validated together with the nodes before anything is recorded, so a failed
// call leaves the graph untouched.
func discountMixed(reward, sequenceLength any, rNode, lNode *graph.Node, rDeferred, lDeferred bool, cfg Config) (*graph.Node, error) {
	g, err := graphOf(rNode, lNode)
	if err != nil {
		return nil, err
	}

	var rTensor, lTensor *tensor.RawTensor
	var rIn operand
	if rDeferred {
		if rNode == nil {
			return nil, fmt.Errorf("discount reward: %w: nil reward", ErrUnsupportedInput)
		}
		rIn = operand{dtype: rNode.DType(), rank: rNode.Rank()}
	} else {
		if rTensor, err = toTensor("reward", reward); err != nil {
			return nil, err
		}
		rIn = operand{dtype: rTensor.DType(), rank: rTensor.Rank()}
	}

	var lIn *operand
	switch {
	case lDeferred && lNode != nil:
		lIn = &operand{dtype: lNode.DType(), rank: lNode.Rank()}
	case !lDeferred && !absent(sequenceLength):
		if lTensor, err = toTensor("sequence length", sequenceLength); err != nil {
			return nil, err
		}
		lIn = &operand{dtype: lTensor.DType(), rank: lTensor.Rank()}
	}

	if _, err := planDeferred(rIn, lIn, cfg); err != nil {
		return nil, err
	}
	if lTensor != nil {
		if err := checkNonNegative(lTensor); err != nil {
			return nil, err
		}
	}

	if rTensor != nil {
		rNode = g.Constant(rTensor)
	}
	if lTensor != nil {
		lNode = g.Constant(lTensor)
	}
	return DiscountGraph(rNode, lNode, cfg)
}

// DiscountEager computes discounted rewards immediately. The kernel is
// chosen by the rank of reward. Inputs are never modified.
func DiscountEager(reward, sequenceLength *tensor.RawTensor, cfg Config) (*tensor.RawTensor, error) {
	if reward == nil {
		return nil, fmt.Errorf("discount reward: %w: nil reward", ErrUnsupportedInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rank := reward.Rank()
	if rank != 1 && rank != 2 {
		return nil, fmt.Errorf("discount reward: %w: reward has shape %v", ErrInvalidRank, reward.Shape())
	}
	if rank == 1 && sequenceLength == nil {
		return nil, ErrMissingSequenceLength
	}
	if sequenceLength != nil {
		if err := checkLengths(sequenceLength.DType(), sequenceLength.Rank()); err != nil {
			return nil, err
		}
		if err := checkBatch(reward, sequenceLength); err != nil {
			return nil, err
		}
		if err := checkNonNegative(sequenceLength); err != nil {
			return nil, err
		}
	}
	dt, err := cfg.resolveDTypes(reward.DType())
	if err != nil {
		return nil, err
	}

	return run[*tensor.RawTensor](compute.NewEager(), reward, sequenceLength, sequenceLength != nil, rank, dt, cfg), nil
}

// DiscountGraph records the discounted-reward computation in the graph of
// reward and returns the output node. cfg.TensorRank selects the kernel and
// must agree with the static rank of reward. Nothing is evaluated until the
// returned node is run by a graph.Executor, and nothing is recorded when an
// error is returned.
//
// The 2D recurrence is recorded as a scan that does not propagate gradients
// (see graph.Node.StopsGradient).
func DiscountGraph(reward, sequenceLength *graph.Node, cfg Config) (*graph.Node, error) {
	if reward == nil {
		return nil, fmt.Errorf("discount reward: %w: nil reward", ErrUnsupportedInput)
	}

	var lIn *operand
	if sequenceLength != nil {
		if sequenceLength.Graph() != reward.Graph() {
			return nil, fmt.Errorf("discount reward: sequence length %s: %w", sequenceLength, graph.ErrForeignNode)
		}
		lIn = &operand{dtype: sequenceLength.DType(), rank: sequenceLength.Rank()}
	}

	p, err := planDeferred(operand{dtype: reward.DType(), rank: reward.Rank()}, lIn, cfg)
	if err != nil {
		return nil, err
	}

	return run[*graph.Node](compute.Deferred{}, reward, sequenceLength, sequenceLength != nil, p.rank, p.dtypes, cfg), nil
}

// run applies the kernel selected by rank, the optional normalization and
// the final cast to the output type.
func run[V any](o compute.Ops[V], reward, lengths V, hasLengths bool, rank int, dt dtypes, cfg Config) V {
	var out V
	if rank == 1 {
		out = discount1D(o, reward, lengths, cfg.Discount, dt.work)
	} else {
		out = discount2D(o, reward, lengths, hasLengths, cfg.Discount, dt.work)
	}
	if cfg.Normalize {
		out = standardize(o, out)
	}
	return o.Cast(out, dt.out)
}

// operand is what is known about an input before anything is computed.
type operand struct {
	dtype tensor.DataType
	rank  int
}

type deferredPlan struct {
	rank int
	dtypes
}

// planDeferred runs every static check of deferred mode.
func planDeferred(reward operand, lengths *operand, cfg Config) (deferredPlan, error) {
	if err := cfg.Validate(); err != nil {
		return deferredPlan{}, err
	}

	rank := cfg.tensorRank()
	if rank != 1 && rank != 2 {
		return deferredPlan{}, fmt.Errorf("discount reward: %w: tensor rank %d", ErrInvalidRank, rank)
	}
	if reward.rank != rank {
		return deferredPlan{}, fmt.Errorf("discount reward: %w: reward has rank %d, tensor rank is %d",
			ErrShapeMismatch, reward.rank, rank)
	}
	if rank == 1 && lengths == nil {
		return deferredPlan{}, ErrMissingSequenceLength
	}
	if lengths != nil {
		if err := checkLengths(lengths.dtype, lengths.rank); err != nil {
			return deferredPlan{}, err
		}
	}

	dt, err := cfg.resolveDTypes(reward.dtype)
	if err != nil {
		return deferredPlan{}, err
	}
	return deferredPlan{rank: rank, dtypes: dt}, nil
}

func checkLengths(dtype tensor.DataType, rank int) error {
	if rank != 1 {
		return fmt.Errorf("discount reward: %w: must be 1D, got rank %d", ErrInvalidSequenceLength, rank)
	}
	if !dtype.IsInteger() {
		return fmt.Errorf("discount reward: %w: must be integer, got %s", ErrInvalidSequenceLength, dtype)
	}
	return nil
}

func checkBatch(reward, lengths *tensor.RawTensor) error {
	if got, want := lengths.Shape()[0], reward.Shape()[0]; got != want {
		return fmt.Errorf("discount reward: %w: %d lengths for batch of %d", ErrShapeMismatch, got, want)
	}
	return nil
}

func checkNonNegative(lengths *tensor.RawTensor) error {
	for _, l := range lengths.Ints() {
		if l < 0 {
			return fmt.Errorf("discount reward: %w: negative length %d", ErrInvalidSequenceLength, l)
		}
	}
	return nil
}

// graphOf returns the graph shared by the non-nil nodes.
func graphOf(nodes ...*graph.Node) (*graph.Graph, error) {
	var g *graph.Graph
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if g != nil && n.Graph() != g {
			return nil, fmt.Errorf("discount reward: %s: %w", n, graph.ErrForeignNode)
		}
		g = n.Graph()
	}
	if g == nil {
		return nil, fmt.Errorf("discount reward: %w: nil node", ErrUnsupportedInput)
	}
	return g, nil
}

func toTensor(what string, v any) (*tensor.RawTensor, error) {
	t, err := tensor.FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("discount reward: %s: %w: %w", what, ErrUnsupportedInput, err)
	}
	return t, nil
}

// absent reports whether an optional operand was left out.
func absent(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *tensor.RawTensor:
		return x == nil
	case *graph.Node:
		return x == nil
	}
	return false
}
