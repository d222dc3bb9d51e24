package appointment

import "errors"

// ErrNotFound is returned by repository reads when the row is absent.
var ErrNotFound = errors.New("not found")
