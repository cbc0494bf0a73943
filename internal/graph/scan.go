package graph

import "fmt"

// scanBody is the sub-graph traced from a scan step function.
type scanBody struct {
	graph *Graph
	acc   *Node // Parameter bound to the running accumulator
	cur   *Node // Parameter bound to the current slice of elems
	out   *Node
}

// Scan records a sequential fold over the first axis of elems.
//
// step is called once, at construction time, with two placeholder nodes of a
// fresh sub-graph: the accumulator (shaped like init) and the current slice of
// elems. The node it returns becomes the body evaluated at every step; it may
// also use nodes of enclosing graphs. The result stacks every intermediate
// accumulator: [len(elems)] + shape(init).
//
// When backProp is false the result is marked with StopsGradient, so no
// gradient flows through the running accumulator.
func Scan(elems, init *Node, step func(acc, cur *Node) *Node, backProp bool) *Node {
	g := scope(opScan, elems, init)
	if elems.rank == 0 {
		panic(fmt.Sprintf("%s: elems must have at least one dimension", opScan))
	}

	sub := &Graph{id: g.id, parent: g}
	body := &scanBody{
		graph: sub,
		acc:   sub.Placeholder("acc", init.dtype, init.rank),
		cur:   sub.Placeholder("cur", elems.dtype, elems.rank-1),
	}
	body.out = step(body.acc, body.cur)
	if body.out == nil || !g.encloses(body.out.graph) {
		panic(fmt.Sprintf("%s: step must return a node built from its arguments", opScan))
	}
	if body.out.dtype != init.dtype || body.out.rank != init.rank {
		panic(fmt.Sprintf("%s: step returned %s, want dtype %s rank %d", opScan, body.out, init.dtype, init.rank))
	}

	return g.add(&Node{
		op:           opScan,
		inputs:       []*Node{elems, init},
		dtype:        init.dtype,
		rank:         init.rank + 1,
		body:         body,
		stopGradient: !backProp,
	})
}
