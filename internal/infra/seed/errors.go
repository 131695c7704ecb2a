package seed

import "errors"

var (
	ErrReadSnapshot   = errors.New("failed to read snapshot")
	ErrDecodeSnapshot = errors.New("failed to decode snapshot")
	ErrInvalidRecord  = errors.New("invalid snapshot record")
)
