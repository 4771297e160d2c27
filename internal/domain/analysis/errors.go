package analysis

import "errors"

// ErrNotFound indicates the requested analysis does not exist.
var ErrNotFound = errors.New("analysis not found")
