package motion

import (
	"errors"
	"fmt"
)

// Errors returned by Resolve and SelectObject.
var (
	// ErrNoMatch is matched by every NoMatchError.
	ErrNoMatch = errors.New("no match")

	// ErrFailed reports a motion that cannot move, such as k on the first
	// line. Vim beeps; callers treat it as a silent no-op.
	ErrFailed = errors.New("motion failed")

	// ErrNoPreviousPattern is returned by n and N before any search.
	ErrNoPreviousPattern = errors.New("E35: No previous regular expression")
)

// NoMatchError reports a search, find, bracket match or text object that
// found nothing.
type NoMatchError struct {
	// What is "search", "find", "match" or "object".
	What string

	// Pattern is the search pattern, find character or object keys.
	Pattern string

	// Backward and NoWrap describe a search that stopped at the buffer
	// edge because wrapscan is off.
	Backward bool
	NoWrap   bool
}

func (e *NoMatchError) Error() string {
	switch e.What {
	case "search":
		if e.NoWrap && e.Backward {
			return "E384: Search hit TOP without match for: " + e.Pattern
		}
		if e.NoWrap {
			return "E385: Search hit BOTTOM without match for: " + e.Pattern
		}
		return "E486: Pattern not found: " + e.Pattern
	case "find":
		return fmt.Sprintf("Character not found: %s", e.Pattern)
	case "match":
		return "No matching bracket"
	default:
		return fmt.Sprintf("No text object %s at cursor", e.Pattern)
	}
}

// Is reports whether target is ErrNoMatch.
func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}
