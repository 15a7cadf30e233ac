package scenario

import "errors"

var (
	ErrNotFound       = errors.New("scenario config not found")
	ErrReplicaMiss    = errors.New("scenario config not in replica")
	ErrReplicaClosed  = errors.New("scenario replica unavailable")
	ErrPrimaryFailure = errors.New("scenario primary store failure")
)
