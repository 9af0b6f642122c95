package memory

import "errors"

var ErrSessionExists = errors.New("session already exists")
