package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/rewards/internal/compute"
	"github.com/born-ml/rewards/internal/graph"
	"github.com/born-ml/rewards/internal/tensor"
)

func TestMaskSequencesEager(t *testing.T) {
	values := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	lengths := tensor.MustFromSlice([]int64{2, 1}, tensor.Shape{2})

	out := MaskSequences[*tensor.RawTensor](compute.NewEager(), values, lengths, tensor.Float32)

	assert.Equal(t, [][]float64{{1, 2, 0}, {4, 0, 0}}, out.Rows())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, values.AsFloat32(), "input must not change")
}

func TestMaskSequencesLengthBeyondTime(t *testing.T) {
	values := tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{1, 2})
	lengths := tensor.MustFromSlice([]int32{5}, tensor.Shape{1})

	out := MaskSequences[*tensor.RawTensor](compute.NewEager(), values, lengths, tensor.Float64)
	assert.Equal(t, [][]float64{{1, 2}}, out.Rows())
}

func TestMaskSequencesCastsAndBroadcastsTrailingDims(t *testing.T) {
	// [B=1, T=2, D=2]
	values := tensor.MustFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{1, 2, 2})
	lengths := tensor.MustFromSlice([]int32{1}, tensor.Shape{1})

	out := MaskSequences[*tensor.RawTensor](compute.NewEager(), values, lengths, tensor.Float32)
	assert.Equal(t, tensor.Float32, out.DType())
	assert.Equal(t, []float32{1, 2, 0, 0}, out.AsFloat32())
}

func TestMaskSequencesDeferred(t *testing.T) {
	g := graph.New()
	values := g.Placeholder("values", tensor.Float32, 2)
	lengths := g.Placeholder("lengths", tensor.Int32, 1)
	out := MaskSequences[*graph.Node](compute.Deferred{}, values, lengths, tensor.Float32)

	res, err := graph.NewExecutor(g).Run(graph.Feeds{
		values:  tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}),
		lengths: tensor.MustFromSlice([]int32{3, 0}, tensor.Shape{2}),
	}, out)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {0, 0, 0}}, res[0].Rows())
}

func TestMaskSequencesDropsNonFinitePadding(t *testing.T) {
	inf := math.Inf(1)
	values := tensor.MustFromSlice([]float64{1, inf, math.NaN(), 2, 3, -inf}, tensor.Shape{2, 3})
	lengths := tensor.MustFromSlice([]int64{1, 2}, tensor.Shape{2})
	want := [][]float64{{1, 0, 0}, {2, 3, 0}}

	eager := MaskSequences[*tensor.RawTensor](compute.NewEager(), values, lengths, tensor.Float64)
	assert.Equal(t, want, eager.Rows())

	g := graph.New()
	v := g.Placeholder("values", tensor.Float64, 2)
	l := g.Placeholder("lengths", tensor.Int64, 1)
	res, err := graph.NewExecutor(g).Run(graph.Feeds{v: values, l: lengths},
		MaskSequences[*graph.Node](compute.Deferred{}, v, l, tensor.Float64))
	require.NoError(t, err)
	assert.Equal(t, want, res[0].Rows())
}

func TestMaskSequencesRejectsRankOne(t *testing.T) {
	assert.Panics(t, func() {
		MaskSequences[*tensor.RawTensor](compute.NewEager(),
			tensor.Zeros(tensor.Shape{3}, tensor.Float32),
			tensor.MustFromSlice([]int32{1}, tensor.Shape{1}),
			tensor.Float32)
	})
}
