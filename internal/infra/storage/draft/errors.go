package draft

import "errors"

var (
	ErrDraftNotFound = errors.New("draft not found")
	ErrEncode        = errors.New("failed to encode draft")
	ErrDecode        = errors.New("failed to decode draft")
	ErrStore         = errors.New("draft store failure")
)
