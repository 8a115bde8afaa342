package events

import "errors"

// ErrBusClosed is returned when publishing on a closed bus
var ErrBusClosed = errors.New("event bus is closed")
