package graph

import "errors"

// Sentinel errors returned by graph construction checks and the Executor.
var (
	ErrForeignNode  = errors.New("node belongs to a different graph")
	ErrMissingFeed  = errors.New("placeholder has no feed")
	ErrFeedMismatch = errors.New("feed does not match placeholder")
	ErrNotFeedable  = errors.New("only placeholders can be fed")
)
