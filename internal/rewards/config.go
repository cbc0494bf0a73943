package rewards

import (
	"fmt"
	"math"

	"github.com/born-ml/rewards/internal/tensor"
)

// normalizeEpsilon keeps standardization finite when every entry is equal.
const normalizeEpsilon = 1e-8

// Config controls how rewards are discounted.
type Config struct {
	// Discount is the per-step decay in (0, 1]. 1 means no decay.
	Discount float64 `yaml:"discount"`

	// Normalize standardizes the result with the global mean and
	// population standard deviation over all batch x time entries.
	Normalize bool `yaml:"normalize"`

	// DType overrides the output element type. nil keeps the reward's type.
	DType *tensor.DataType `yaml:"dtype,omitempty"`

	// TensorRank selects the 1D or 2D kernel in deferred mode. Eager mode
	// reads the rank from the reward itself. 0 is treated as 1.
	TensorRank int `yaml:"tensor_rank,omitempty"`
}

// DefaultConfig returns the configuration for undiscounted, unnormalized
// returns of a rank-1 reward.
func DefaultConfig() Config {
	return Config{
		Discount:   1,
		TensorRank: 1,
	}
}

// Validate checks the discount factor.
func (c Config) Validate() error {
	if math.IsNaN(c.Discount) || c.Discount <= 0 || c.Discount > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidDiscount, c.Discount)
	}
	return nil
}

func (c Config) tensorRank() int {
	if c.TensorRank == 0 {
		return 1
	}
	return c.TensorRank
}

// dtypes holds the element types of one call, resolved once at entry.
type dtypes struct {
	work tensor.DataType // kernels compute in this float type
	out  tensor.DataType // result type
}

// resolveDTypes picks the output type (the override when set, the reward's
// own type otherwise) and the float type the kernels compute in: the output
// type if it is float, else the reward type if that is float, else float64.
// Integer outputs are cast at the end, truncating discounted values.
// Normalized results are always float, so an integer output type yields the
// work type when Normalize is set.
func (c Config) resolveDTypes(reward tensor.DataType) (dtypes, error) {
	out := reward
	if c.DType != nil {
		out = *c.DType
	}
	if !out.IsFloat() && !out.IsInteger() {
		return dtypes{}, fmt.Errorf("%w: unknown output dtype %d", ErrUnsupportedInput, int(out))
	}

	var work tensor.DataType
	switch {
	case out.IsFloat():
		work = out
	case reward.IsFloat():
		work = reward
	default:
		work = tensor.Float64
	}
	if c.Normalize && !out.IsFloat() {
		out = work
	}
	return dtypes{work: work, out: out}, nil
}
