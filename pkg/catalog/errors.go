package catalog

import "errors"

var ErrNotFound = errors.New("not found")
var ErrUnauthorized = errors.New("unauthorized")
var ErrSourceUnavailable = errors.New("catalog source unavailable")
