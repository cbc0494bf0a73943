// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"go.uber.org/zap"

	"github.com/born-ml/rewards/internal/graph"
	"github.com/born-ml/rewards/tensor"
)

// Graph records deferred operations.
type Graph = graph.Graph

// Node is a symbolic value in a Graph with a static dtype and rank.
type Node = graph.Node

// Executor evaluates nodes of a graph on the CPU.
type Executor = graph.Executor

// Option configures an Executor.
type Option = graph.Option

// Feeds binds placeholder nodes to concrete values for one run.
type Feeds = graph.Feeds

// Errors returned while building or running graphs.
var (
	ErrForeignNode  = graph.ErrForeignNode
	ErrMissingFeed  = graph.ErrMissingFeed
	ErrFeedMismatch = graph.ErrFeedMismatch
	ErrNotFeedable  = graph.ErrNotFeedable
)

// New creates an empty graph.
//
// Example:
//
//	g := graph.New()
//	reward := g.Placeholder("reward", tensor.Float32, 2)
func New() *Graph {
	return graph.New()
}

// NewExecutor creates an executor for g.
//
// Example:
//
//	out, err := graph.NewExecutor(g).Run(graph.Feeds{reward: values}, node)
func NewExecutor(g *Graph, opts ...Option) *Executor {
	return graph.NewExecutor(g, opts...)
}

// WithLogger makes the executor write debug traces to logger.
func WithLogger(logger *zap.Logger) Option {
	return graph.WithLogger(logger)
}

// Run is a convenience wrapper that evaluates a single node.
func Run(g *Graph, feeds Feeds, fetch *Node, opts ...Option) (*tensor.RawTensor, error) {
	out, err := graph.NewExecutor(g, opts...).Run(feeds, fetch)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}
