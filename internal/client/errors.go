package client

import "errors"

var ErrUnknownArea = errors.New("unknown area")
