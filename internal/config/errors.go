package config

import "errors"

var (
	errInvalidHTTPAddress = errors.New("http address must be in `host:port` form")
)
