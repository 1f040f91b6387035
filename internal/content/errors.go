package content

import "errors"

// Failure kinds surfaced by content operations. Callers match with
// errors.Is; the underlying platform error stays wrapped inside.
var (
	ErrValidation = errors.New("validation error")
	ErrUpload     = errors.New("upload failed")
	ErrWrite      = errors.New("write failed")
	ErrFetch      = errors.New("fetch failed")
	ErrDelete     = errors.New("delete failed")
	ErrNotFound   = errors.New("not found")
)
