// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides deferred evaluation for the rewards package.
//
// # Overview
//
// Building a graph never computes anything. Operations are recorded as
// nodes with a static dtype and rank; an Executor evaluates the requested
// nodes later, given concrete values for the placeholders:
//
//	g := graph.New()
//	reward := g.Placeholder("reward", tensor.Float32, 2)
//	lengths := g.Placeholder("sequence_length", tensor.Int32, 1)
//
//	cfg := rewards.Config{Discount: 0.99, TensorRank: 2}
//	node, err := rewards.DiscountGraph(reward, lengths, cfg)
//
//	out, err := graph.Run(g, graph.Feeds{reward: r, lengths: l}, node)
//
// The same graph can be run any number of times with different feeds.
//
// # Errors
//
// Runtime failures such as feeds whose shapes do not fit together are
// returned by Executor.Run; no partial results are produced.
package graph
