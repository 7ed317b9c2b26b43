package app

import "errors"

// ErrInvalidRequest is returned when a request fails field validation.
var ErrInvalidRequest = errors.New("invalid request")
