package model

import "errors"

// ErrValidation marks values that do not fit a record field.
var ErrValidation = errors.New("validation error")
