package graph

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/rewards/internal/backend/cpu"
	"github.com/born-ml/rewards/internal/tensor"
)

// Feeds binds placeholder nodes to concrete values for one Run.
type Feeds map[*Node]*tensor.RawTensor

// Executor evaluates nodes of a graph on the CPU backend.
// An Executor holds no per-run state and may be reused.
type Executor struct {
	graph   *Graph
	backend *cpu.CPUBackend
	logger  *zap.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for debug traces of evaluated nodes.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates an executor for g.
func NewExecutor(g *Graph, opts ...Option) *Executor {
	e := &Executor{
		graph:   g,
		backend: cpu.New(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run evaluates fetches given feeds and returns one tensor per fetch.
//
// Every placeholder a fetch depends on must be fed with a tensor of the
// placeholder's dtype and rank. Nodes shared by several fetches are evaluated
// once. A backend failure during evaluation (for example incompatible runtime
// shapes) is returned as an error and no results are produced.
func (e *Executor) Run(feeds Feeds, fetches ...*Node) (results []*tensor.RawTensor, err error) {
	if err := e.validate(feeds, fetches); err != nil {
		return nil, err
	}

	e.logger.Debug("running graph",
		zap.Stringer("graph", e.graph.id),
		zap.String("backend", e.backend.Name()),
		zap.Int("fetches", len(fetches)),
		zap.Int("feeds", len(feeds)))

	defer func() {
		if r := recover(); r != nil {
			results = nil
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("graph: run failed: %w", rerr)
			} else {
				err = fmt.Errorf("graph: run failed: %v", r)
			}
		}
	}()

	st := &runState{exec: e, graph: e.graph, feeds: feeds, values: make(map[*Node]*tensor.RawTensor)}
	results = make([]*tensor.RawTensor, len(fetches))
	for i, fetch := range fetches {
		if results[i], err = st.value(fetch); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (e *Executor) validate(feeds Feeds, fetches []*Node) error {
	for _, fetch := range fetches {
		if fetch == nil || fetch.graph != e.graph {
			return fmt.Errorf("graph: fetch %v: %w", fetch, ErrForeignNode)
		}
	}
	for node, value := range feeds {
		switch {
		case node.graph != e.graph:
			return fmt.Errorf("graph: feed %s: %w", node, ErrForeignNode)
		case node.op != opPlaceholder:
			return fmt.Errorf("graph: feed %s: %w", node, ErrNotFeedable)
		case value == nil:
			return fmt.Errorf("graph: feed %s: %w: nil value", node, ErrFeedMismatch)
		case value.DType() != node.dtype || value.Rank() != node.rank:
			return fmt.Errorf("graph: feed %s: %w: got %s%v", node, ErrFeedMismatch, value.DType(), value.Shape())
		}
	}
	return nil
}

// runState memoizes node values for one evaluation of one graph. Scan bodies
// get a child state whose parent resolves captured outer nodes.
type runState struct {
	exec   *Executor
	graph  *Graph
	parent *runState
	feeds  Feeds
	values map[*Node]*tensor.RawTensor
}

func (s *runState) value(n *Node) (*tensor.RawTensor, error) {
	if n.graph != s.graph {
		if s.parent == nil {
			return nil, fmt.Errorf("graph: %s: %w", n, ErrForeignNode)
		}
		return s.parent.value(n)
	}
	if v, ok := s.values[n]; ok {
		return v, nil
	}

	args := make([]*tensor.RawTensor, len(n.inputs))
	for i, in := range n.inputs {
		v, err := s.value(in)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	out, err := s.compute(n, args)
	if err != nil {
		return nil, err
	}
	s.values[n] = out

	if ce := s.exec.logger.Check(zap.DebugLevel, "evaluated node"); ce != nil {
		ce.Write(zap.Stringer("node", n), zap.Ints("shape", out.Shape()))
	}
	return out, nil
}

func (s *runState) compute(n *Node, args []*tensor.RawTensor) (*tensor.RawTensor, error) {
	b := s.exec.backend

	switch n.op {
	case opPlaceholder:
		v, ok := s.feeds[n]
		if !ok {
			return nil, fmt.Errorf("graph: %s: %w", n, ErrMissingFeed)
		}
		return v, nil
	case opConstant:
		return n.value, nil
	case opAdd:
		return b.Add(args[0], args[1]), nil
	case opSub:
		return b.Sub(args[0], args[1]), nil
	case opMul:
		return b.Mul(args[0], args[1]), nil
	case opDiv:
		return b.Div(args[0], args[1]), nil
	case opAddScalar:
		return b.AddScalar(args[0], n.scalar), nil
	case opMulScalar:
		return b.MulScalar(args[0], n.scalar), nil
	case opSqrt:
		return b.Sqrt(args[0]), nil
	case opCast:
		return b.Cast(args[0], n.dtype), nil
	case opMean:
		return b.Mean(args[0]), nil
	case opMax:
		return b.Max(args[0]), nil
	case opCumSum:
		return b.CumSum(args[0], n.axis, n.reverse), nil
	case opCumProd:
		return b.CumProd(args[0], n.axis, n.reverse), nil
	case opReverse:
		return b.Reverse(args[0], n.axis), nil
	case opTranspose:
		return b.Transpose(args[0], n.perm...), nil
	case opUnsqueeze:
		return b.Unsqueeze(args[0], n.axis), nil
	case opDim:
		return b.Dim(args[0], n.axis), nil
	case opSequenceMask:
		return b.SequenceMask(args[0], int(args[1].Item()), n.dtype), nil
	case opFill:
		shape := make(tensor.Shape, len(args))
		for i, d := range args {
			shape[i] = int(d.Item())
		}
		if err := shape.Validate(); err != nil {
			return nil, fmt.Errorf("graph: %s: %w", n, err)
		}
		return tensor.Full(shape, n.dtype, n.scalar), nil
	case opWhere:
		return b.Where(args[0], args[1], n.scalar), nil
	case opScan:
		return s.scan(n, args[0], args[1]), nil
	default:
		return nil, fmt.Errorf("graph: %s: unknown operation", n)
	}
}

// scan evaluates the traced body once per slice of elems. Body failures
// panic and are turned back into errors by Run.
func (s *runState) scan(n *Node, elems, init *tensor.RawTensor) *tensor.RawTensor {
	body := n.body
	return s.exec.backend.Scan(elems, init, func(acc, cur *tensor.RawTensor) *tensor.RawTensor {
		step := &runState{
			exec:   s.exec,
			graph:  body.graph,
			parent: s,
			feeds:  Feeds{body.acc: acc, body.cur: cur},
			values: make(map[*Node]*tensor.RawTensor),
		}
		out, err := step.value(body.out)
		if err != nil {
			panic(err)
		}
		return out
	})
}
