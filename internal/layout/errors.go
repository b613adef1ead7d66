package layout

import "errors"

// Layout errors.
var (
	ErrLastWindow    = errors.New("E444: Cannot close last window")
	ErrNoRoom        = errors.New("E36: Not enough room")
	ErrWindowUnknown = errors.New("no such window")
)
