package tensor

import "errors"

// Sentinel errors for tensor construction.
var (
	ErrInvalidShape     = errors.New("invalid shape")
	ErrUnknownDataType  = errors.New("unknown data type")
	ErrRaggedSlice      = errors.New("nested slice rows have different lengths")
	ErrUnsupportedValue = errors.New("unsupported value type")
)
