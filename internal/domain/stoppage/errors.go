package stoppage

import "errors"

var (
	ErrNotFound        = errors.New("stoppage not found")
	ErrAlreadyOpen     = errors.New("fleet already has an open stoppage")
	ErrNoOpenStoppage  = errors.New("fleet has no open stoppage")
	ErrInvalidInterval = errors.New("stoppage start must precede its end")
)
