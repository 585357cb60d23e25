package batch

import "errors"

// Batch domain errors
var (
	ErrBatchNotFound   = errors.New("batch not found")
	ErrBatchNameExists = errors.New("a batch with this name already exists")
)
