package models

import "errors"

// ErrUnmatchedAction is returned when no adapter handles a vendor/action pair.
var ErrUnmatchedAction = errors.New("adapter: unmatched vendor/action")
