package rewards

import (
	"github.com/born-ml/rewards/internal/compute"
	"github.com/born-ml/rewards/internal/shapes"
	"github.com/born-ml/rewards/internal/tensor"
)

// discount1D expands one reward per sequence across time. Row b of the
// result holds reward[b] * discount^(L-1-t) for t < L = lengths[b] and zero
// from L on: the last valid step is not discounted.
func discount1D[V any](o compute.Ops[V], reward, lengths V, discount float64, dtype tensor.DataType) V {
	reward = o.Cast(reward, dtype)
	maxLen := o.Max(lengths)

	var dmat V
	if discount == 1 {
		dmat = o.Fill(dtype, 1, o.Dim(lengths, 0), maxLen)
	} else {
		// 1 where t < L-1, i.e. every step before the last valid one.
		mask := o.SequenceMask(o.AddScalar(lengths, -1), maxLen, dtype)
		// Make each row = [discount, ..., discount, 1, ..., 1]
		dmat = o.Add(o.MulScalar(mask, discount), o.AddScalar(o.MulScalar(mask, -1), 1))
		dmat = o.CumProd(dmat, 1, true)
	}

	disc := o.Mul(dmat, o.Unsqueeze(reward, -1))
	return shapes.MaskSequences(o, disc, lengths, dtype)
}

// discount2D turns a [B, T] reward matrix into returns:
// out[:, t] = reward[:, t] + discount * out[:, t+1].
// When hasLengths is set, reward entries past each row's length are zeroed
// first so padding never leaks into the recurrence.
func discount2D[V any](o compute.Ops[V], reward, lengths V, hasLengths bool, discount float64, dtype tensor.DataType) V {
	reward = o.Cast(reward, dtype)
	if hasLengths {
		reward = shapes.MaskSequences(o, reward, lengths, dtype)
	}

	if discount == 1 {
		return o.CumSum(reward, 1, true)
	}

	// [max_time, batch_size], last step first.
	revT := o.Transpose(o.Reverse(reward, 1))
	init := o.Fill(dtype, 0, o.Dim(reward, 0))
	cum := o.Scan(revT, init, func(acc, cur V) V {
		return o.Add(cur, o.MulScalar(acc, discount))
	}, false)
	return o.Reverse(o.Transpose(cum), 1)
}

// standardize subtracts the global mean and divides by the global population
// standard deviation plus normalizeEpsilon.
func standardize[V any](o compute.Ops[V], x V) V {
	centered := o.Sub(x, o.Mean(x))
	std := o.Sqrt(o.Mean(o.Mul(centered, centered)))
	return o.Div(centered, o.AddScalar(std, normalizeEpsilon))
}
