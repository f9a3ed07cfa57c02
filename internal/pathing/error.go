package pathing

import "errors"

// ErrInvalidPath is an error that occurs when a user-supplied path cannot be
// resolved to an existing share path under the source volume.
var ErrInvalidPath = errors.New("not a valid share path")
