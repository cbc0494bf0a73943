// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package rewards computes discounted cumulative returns for policy-gradient
// training.
//
// # Overview
//
// Two reward layouts are supported:
//   - One reward per sequence, [B]: expanded across time so that step t of
//     a sequence of length L receives reward * discount^(L-1-t)
//   - One reward per step, [B, T]: accumulated backwards in time,
//     out[t] = reward[t] + discount * out[t+1]
//
// Every entry at or beyond a sequence's length is exactly zero. With
// Config.Normalize the result is standardized with its global mean and
// standard deviation.
//
// # Execution Modes
//
// Go slices and *tensor.RawTensor values are computed immediately.
// *graph.Node values are recorded in their graph and evaluated later by a
// graph.Executor; Config.TensorRank then tells which layout the reward has.
//
//	cfg := rewards.DefaultConfig()
//	cfg.Discount = 0.99
//	cfg.TensorRank = 2
//
//	g := graph.New()
//	reward := g.Placeholder("reward", tensor.Float32, 2)
//	node, err := rewards.DiscountGraph(reward, nil, cfg)
//
// # Errors
//
// Invalid inputs are reported before any computation with the errors
// declared in this package (and graph.ErrForeignNode for nodes of different
// graphs).
package rewards
