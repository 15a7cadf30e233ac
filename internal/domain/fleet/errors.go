package fleet

import "errors"

var (
	ErrUnitNotFound         = errors.New("unit not found")
	ErrFleetNotFound        = errors.New("fleet not found")
	ErrStoppageTypeNotFound = errors.New("stoppage type not found")
	ErrCodeAlreadyExists    = errors.New("code already exists")
)
