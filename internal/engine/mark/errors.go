package mark

import "errors"

// Errors returned by mark lookups and list navigation.
var (
	ErrMarkNotSet      = errors.New("E20: Mark not set")
	ErrMarkDeleted     = errors.New("E19: Mark has invalid line number")
	ErrInvalidMark     = errors.New("E191: Argument must be a letter or forward/backward quote")
	ErrChangeListEmpty = errors.New("E664: changelist is empty")
	ErrAtStart         = errors.New("E662: At start of changelist")
	ErrAtEnd           = errors.New("E663: At end of changelist")
)
