// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package rewards

import (
	"github.com/born-ml/rewards/graph"
	"github.com/born-ml/rewards/internal/compute"
	"github.com/born-ml/rewards/internal/rewards"
	"github.com/born-ml/rewards/internal/shapes"
	"github.com/born-ml/rewards/tensor"
)

// Config controls how rewards are discounted.
type Config = rewards.Config

// Value is a *tensor.RawTensor in eager mode or a *graph.Node in deferred
// mode.
type Value = rewards.Value

// Errors returned by the reward functions.
var (
	ErrMissingSequenceLength = rewards.ErrMissingSequenceLength
	ErrInvalidRank           = rewards.ErrInvalidRank
	ErrInvalidDiscount       = rewards.ErrInvalidDiscount
	ErrUnsupportedInput      = rewards.ErrUnsupportedInput
	ErrInvalidSequenceLength = rewards.ErrInvalidSequenceLength
	ErrShapeMismatch         = rewards.ErrShapeMismatch
)

// DefaultConfig returns undiscounted, unnormalized settings for a rank-1
// reward.
func DefaultConfig() Config {
	return rewards.DefaultConfig()
}

// DiscountReward computes discounted rewards.
//
// reward is a [B] vector (one reward per sequence, requires sequenceLength)
// or a [B, T] matrix. sequenceLength is a [B] integer vector, or nil for a
// matrix reward. Both accept Go slices or *tensor.RawTensor. If either is a
// *graph.Node, the computation is recorded in its graph and the result is a
// *graph.Node; otherwise it is computed immediately.
//
// Example:
//
//	cfg := rewards.DefaultConfig()
//	cfg.Discount = 0.5
//	out, err := rewards.DiscountReward([]float64{1}, []int{3}, cfg)
//	// out.(*tensor.RawTensor).Rows() == [[0.25, 0.5, 1]]
func DiscountReward(reward, sequenceLength any, cfg Config) (Value, error) {
	return rewards.DiscountReward(reward, sequenceLength, cfg)
}

// DiscountEager computes discounted rewards immediately.
// sequenceLength may be nil for a rank-2 reward.
func DiscountEager(reward, sequenceLength *tensor.RawTensor, cfg Config) (*tensor.RawTensor, error) {
	return rewards.DiscountEager(reward, sequenceLength, cfg)
}

// DiscountGraph records the computation in reward's graph. cfg.TensorRank
// selects the 1D or 2D form. sequenceLength may be nil when TensorRank is 2.
func DiscountGraph(reward, sequenceLength *graph.Node, cfg Config) (*graph.Node, error) {
	return rewards.DiscountGraph(reward, sequenceLength, cfg)
}

// MaskSequences zeroes every entry of values (rank >= 2, time on axis 1) at
// or beyond its row's length, casting values to dtype first.
//
// Example:
//
//	values:  [[1, 2, 3], [4, 5, 6]]
//	lengths: [2, 1]
//	result:  [[1, 2, 0], [4, 0, 0]]
func MaskSequences(values, lengths *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return shapes.MaskSequences[*tensor.RawTensor](compute.NewEager(), values, lengths, dtype)
}

// MaskSequencesGraph records MaskSequences in the graph of values.
func MaskSequencesGraph(values, lengths *graph.Node, dtype tensor.DataType) *graph.Node {
	return shapes.MaskSequences[*graph.Node](compute.Deferred{}, values, lengths, dtype)
}
