// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package rewards_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/rewards/graph"
	"github.com/born-ml/rewards/rewards"
	"github.com/born-ml/rewards/tensor"
)

func TestDiscountRewardGraph(t *testing.T) {
	g := graph.New()
	reward := g.Placeholder("reward", tensor.Float64, 2)

	cfg := rewards.DefaultConfig()
	cfg.Discount = 0.5
	cfg.TensorRank = 2

	out, err := rewards.DiscountReward(reward, nil, cfg)
	require.NoError(t, err)
	node, ok := out.(*graph.Node)
	require.True(t, ok)

	// The same graph evaluates any number of batches.
	for _, tc := range []struct {
		in   [][]float64
		want [][]float64
	}{
		{[][]float64{{1, 2, 3}}, [][]float64{{2.75, 3.5, 3}}},
		{[][]float64{{0, 0}, {4, 2}}, [][]float64{{0, 0}, {5, 2}}},
	} {
		value, err := tensor.FromValue(tc.in)
		require.NoError(t, err)

		res, err := graph.Run(g, graph.Feeds{reward: value}, node)
		require.NoError(t, err)
		assert.Equal(t, tc.want, res.Rows())
	}
}

func TestMaskSequencesBothModes(t *testing.T) {
	values := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	lengths := tensor.MustFromSlice([]int32{2, 1}, tensor.Shape{2})
	want := [][]float64{{1, 2, 0}, {4, 0, 0}}

	assert.Equal(t, want, rewards.MaskSequences(values, lengths, tensor.Float32).Rows())

	g := graph.New()
	v := g.Placeholder("values", tensor.Float32, 2)
	l := g.Placeholder("lengths", tensor.Int32, 1)
	res, err := graph.Run(g, graph.Feeds{v: values, l: lengths}, rewards.MaskSequencesGraph(v, l, tensor.Float64))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, res.DType())
	assert.Equal(t, want, res.Rows())
}

func TestErrorsAreExported(t *testing.T) {
	_, err := rewards.DiscountReward([]float64{1, 2}, nil, rewards.DefaultConfig())
	assert.ErrorIs(t, err, rewards.ErrMissingSequenceLength)

	_, err = rewards.DiscountEager(tensor.Zeros(tensor.Shape{1, 1, 1}, tensor.Float32), nil, rewards.DefaultConfig())
	assert.ErrorIs(t, err, rewards.ErrInvalidRank)
}

func ExampleDiscountReward() {
	cfg := rewards.DefaultConfig()
	cfg.Discount = 0.5

	out, err := rewards.DiscountReward([]float64{1, 2}, []int{3, 2}, cfg)
	if err != nil {
		panic(err)
	}
	fmt.Println(out.(*tensor.RawTensor).Rows())
	// Output: [[0.25 0.5 1] [1 2 0]]
}
