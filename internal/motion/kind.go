package motion

import "fmt"

// Kind identifies a motion. The set is closed; every switch over Kind in
// this package is exhaustive.
type Kind uint8

const (
	None Kind = iota

	Left  // h
	Right // l
	Up    // k
	Down  // j

	WordForward        // w
	WordBackward       // b
	WordEnd            // e
	WordEndBackward    // ge
	BigWordForward     // W
	BigWordBackward    // B
	BigWordEnd         // E
	BigWordEndBackward // gE

	LineStart     // 0
	FirstNonBlank // ^
	LineEnd       // $
	LastNonBlank  // g_
	CurrentLine   // _
	NextLine      // + <CR>
	PrevLine      // -
	Column        // |

	ParagraphForward  // }
	ParagraphBackward // {

	FileStart    // gg
	FileEnd      // G
	ScreenTop    // H
	ScreenMiddle // M
	ScreenBottom // L

	FindForward       // f
	FindBackward      // F
	TillForward       // t
	TillBackward      // T
	RepeatFind        // ;
	RepeatFindReverse // ,

	MatchPair // %

	SearchForward     // /
	SearchBackward    // ?
	SearchNext        // n
	SearchPrev        // N
	WordUnderForward  // *
	WordUnderBackward // #

	MarkExact // `
	MarkLine  // '

	numKinds
)

var kindKeys = [numKinds]string{
	None:               "",
	Left:               "h",
	Right:              "l",
	Up:                 "k",
	Down:               "j",
	WordForward:        "w",
	WordBackward:       "b",
	WordEnd:            "e",
	WordEndBackward:    "ge",
	BigWordForward:     "W",
	BigWordBackward:    "B",
	BigWordEnd:         "E",
	BigWordEndBackward: "gE",
	LineStart:          "0",
	FirstNonBlank:      "^",
	LineEnd:            "$",
	LastNonBlank:       "g_",
	CurrentLine:        "_",
	NextLine:           "+",
	PrevLine:           "-",
	Column:             "|",
	ParagraphForward:   "}",
	ParagraphBackward:  "{",
	FileStart:          "gg",
	FileEnd:            "G",
	ScreenTop:          "H",
	ScreenMiddle:       "M",
	ScreenBottom:       "L",
	FindForward:        "f",
	FindBackward:       "F",
	TillForward:        "t",
	TillBackward:       "T",
	RepeatFind:         ";",
	RepeatFindReverse:  ",",
	MatchPair:          "%",
	SearchForward:      "/",
	SearchBackward:     "?",
	SearchNext:         "n",
	SearchPrev:         "N",
	WordUnderForward:   "*",
	WordUnderBackward:  "#",
	MarkExact:          "`",
	MarkLine:           "'",
}

// String returns the keys that invoke the motion.
func (k Kind) String() string {
	if k < numKinds {
		return kindKeys[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Classify reports whether the motion is inclusive and whether it is
// linewise. ; and , take the class of the find they repeat.
func (k Kind) Classify() (inclusive, linewise bool) {
	switch k {
	case Up, Down, CurrentLine, NextLine, PrevLine,
		FileStart, FileEnd, ScreenTop, ScreenMiddle, ScreenBottom, MarkLine:
		return false, true
	case WordEnd, WordEndBackward, BigWordEnd, BigWordEndBackward,
		LineEnd, LastNonBlank, FindForward, TillForward, MatchPair:
		return true, false
	case None, Left, Right, WordForward, WordBackward, BigWordForward, BigWordBackward,
		LineStart, FirstNonBlank, Column, ParagraphForward, ParagraphBackward,
		FindBackward, TillBackward, RepeatFind, RepeatFindReverse,
		SearchForward, SearchBackward, SearchNext, SearchPrev,
		WordUnderForward, WordUnderBackward, MarkExact:
		return false, false
	}
	return false, false
}

// IsJump reports whether the motion records the previous position in the
// jump list.
func (k Kind) IsJump() bool {
	switch k {
	case FileStart, FileEnd, ScreenTop, ScreenMiddle, ScreenBottom,
		ParagraphForward, ParagraphBackward, MatchPair,
		SearchForward, SearchBackward, SearchNext, SearchPrev,
		WordUnderForward, WordUnderBackward, MarkExact, MarkLine:
		return true
	}
	return false
}

// NeedsChar reports whether the motion takes a character argument.
func (k Kind) NeedsChar() bool {
	switch k {
	case FindForward, FindBackward, TillForward, TillBackward, MarkExact, MarkLine:
		return true
	}
	return false
}

// NeedsPattern reports whether the motion reads a pattern from the
// command line.
func (k Kind) NeedsPattern() bool {
	return k == SearchForward || k == SearchBackward
}

// Motion is a motion with its argument.
type Motion struct {
	Kind Kind

	// Char is the argument of f F t T ` '.
	Char rune

	// Pattern is the argument of / and ?. Empty reuses the last pattern.
	Pattern string
}

// String returns the keys of the motion.
func (m Motion) String() string {
	switch {
	case m.Kind.NeedsChar():
		return m.Kind.String() + string(m.Char)
	case m.Kind.NeedsPattern():
		return m.Kind.String() + m.Pattern
	default:
		return m.Kind.String()
	}
}

// IsZero reports whether no motion is set.
func (m Motion) IsZero() bool {
	return m.Kind == None
}
