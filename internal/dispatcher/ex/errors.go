package ex

import "errors"

// Errors returned while parsing and resolving command lines.
var (
	ErrInvalidRange    = errors.New("E16: Invalid range")
	ErrInvalidAddress  = errors.New("E14: Invalid address")
	ErrTrailing        = errors.New("E488: Trailing characters")
	ErrNoPrevious      = errors.New("E35: No previous regular expression")
	ErrNoPreviousSub   = errors.New("E35: No previous substitute regular expression")
	ErrBadDelimiter    = errors.New("E146: Regular expressions can't be delimited by letters")
	ErrUnknownOption   = errors.New("E518: Unknown option")
	ErrInvalidArgument = errors.New("E474: Invalid argument")
)
