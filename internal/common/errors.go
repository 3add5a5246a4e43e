package common

import "errors"

var (
	// ErrorNotFound is returned when a referenced record does not exist.
	ErrorNotFound = errors.New("not found")

	// ErrorInternal wraps unexpected failures that callers cannot act on.
	ErrorInternal = errors.New("internal error")
)
