package random

import "errors"

var ErrLength = errors.New("invalid reference length")
