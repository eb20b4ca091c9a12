package common

import "errors"

// Malformed-input errors are detected before any network call and are never
// retried. They are shared here because both the decoder and the trace client
// validate the same wire formats.
var (
	ErrInvalidHashFormat     = errors.New("invalid transaction hash format")
	ErrInvalidCallDataFormat = errors.New("invalid calldata format")
)
