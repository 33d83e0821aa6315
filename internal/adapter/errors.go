package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrValidationRejected  = errors.New("config value rejected by validation")
	ErrNotFound            = errors.New("not found")
	ErrVersionConflict     = errors.New("version conflict")
	ErrInternalServerError = errors.New("internal server error")
)
