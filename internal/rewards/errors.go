package rewards

import "errors"

// Input-validation errors. All of them are returned before any numeric work
// starts.
var (
	ErrMissingSequenceLength = errors.New("sequence length must be provided for 1D reward")
	ErrInvalidRank           = errors.New("reward rank must be 1 or 2")
	ErrInvalidDiscount       = errors.New("discount must be in (0, 1]")
	ErrUnsupportedInput      = errors.New("unsupported input value")
	ErrInvalidSequenceLength = errors.New("invalid sequence length")
	ErrShapeMismatch         = errors.New("reward and sequence length shapes do not match")
)
