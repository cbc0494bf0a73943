// Package graph implements deferred evaluation: building a graph only records
// operations as typed nodes with a static dtype and rank, and an Executor
// evaluates the requested nodes later on the CPU backend.
//
// Usage:
//
//	g := graph.New()
//	x := g.Placeholder("reward", tensor.Float32, 2)
//	y := graph.CumSum(x, 1, true)
//	out, err := graph.NewExecutor(g).Run(graph.Feeds{x: reward}, y)
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/born-ml/rewards/internal/tensor"
)

// Graph holds the nodes recorded so far. Nodes are kept in creation order,
// which is always a valid evaluation order.
type Graph struct {
	id     uuid.UUID
	parent *Graph // Enclosing graph for scan bodies
	nodes  []*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{id: uuid.New()}
}

// ID returns the graph's unique identifier.
func (g *Graph) ID() uuid.UUID {
	return g.id
}

// NumNodes returns the number of recorded nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// String returns a short human-readable description of the graph.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%s, %d nodes)", g.id, len(g.nodes))
}

// encloses reports whether g is other or one of other's ancestors.
func (g *Graph) encloses(other *Graph) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == g {
			return true
		}
	}
	return false
}

// Node is a symbolic value: the output of one recorded operation.
// Its shape is only known at execution time; dtype and rank are static.
type Node struct {
	graph  *Graph
	id     int
	op     opType
	inputs []*Node
	dtype  tensor.DataType
	rank   int

	name         string            // Placeholders
	value        *tensor.RawTensor // Constants
	axis         int
	reverse      bool
	scalar       float64
	perm         []int
	body         *scanBody
	stopGradient bool
}

// Graph returns the graph the node was recorded in.
func (n *Node) Graph() *Graph { return n.graph }

// ID returns the node's position in its graph.
func (n *Node) ID() int { return n.id }

// DType returns the node's static element type.
func (n *Node) DType() tensor.DataType { return n.dtype }

// Rank returns the node's static number of dimensions.
func (n *Node) Rank() int { return n.rank }

// Op returns the name of the operation that produces the node.
func (n *Node) Op() string { return n.op.String() }

// Name returns the placeholder name, or "" for other nodes.
func (n *Node) Name() string { return n.name }

// Inputs returns the node's operands.
func (n *Node) Inputs() []*Node { return n.inputs }

// StopsGradient reports whether gradients must not flow through this node
// into its inputs.
func (n *Node) StopsGradient() bool { return n.stopGradient }

// String returns a human-readable description of the node.
func (n *Node) String() string {
	if n.name != "" {
		return fmt.Sprintf("Node#%d(%s %q, %s, rank %d)", n.id, n.op, n.name, n.dtype, n.rank)
	}
	return fmt.Sprintf("Node#%d(%s, %s, rank %d)", n.id, n.op, n.dtype, n.rank)
}

func (g *Graph) add(n *Node) *Node {
	n.graph = g
	n.id = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return n
}

// Placeholder records an input whose value is supplied through Feeds when the
// graph is executed.
func (g *Graph) Placeholder(name string, dtype tensor.DataType, rank int) *Node {
	if rank < 0 {
		panic(fmt.Sprintf("placeholder %q: negative rank %d", name, rank))
	}
	return g.add(&Node{op: opPlaceholder, name: name, dtype: dtype, rank: rank})
}

// Constant records a fixed value. The tensor is cloned, so later changes to
// value do not affect the graph.
func (g *Graph) Constant(value *tensor.RawTensor) *Node {
	return g.add(&Node{op: opConstant, value: value.Clone(), dtype: value.DType(), rank: value.Rank()})
}

// scope returns the innermost graph shared by all nodes: every node must
// belong to it or to one of its enclosing graphs.
func scope(op opType, nodes ...*Node) *Graph {
	var g *Graph
	for _, n := range nodes {
		if n == nil {
			panic(fmt.Sprintf("%s: nil node", op))
		}
		switch {
		case g == nil || n.graph.encloses(g):
		case g.encloses(n.graph):
			g = n.graph
		default:
			panic(fmt.Errorf("%s: %w: %s and %s", op, ErrForeignNode, g.id, n.graph.id))
		}
		if g == nil {
			g = n.graph
		}
	}
	return g
}
