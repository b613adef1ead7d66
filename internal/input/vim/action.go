package vim

import (
	"fmt"

	"github.com/dshills/modalcore/internal/input/key"
)

// Action is a Normal or Visual mode command that is neither an operator
// nor a motion.
type Action uint8

const (
	ActNone Action = iota

	// Entering insert mode
	ActInsert          // i
	ActAppend          // a
	ActInsertLineStart // I
	ActAppendLineEnd   // A
	ActOpenBelow       // o
	ActOpenAbove       // O

	// Simple changes
	ActDeleteChar       // x
	ActDeleteCharBefore // X
	ActDeleteToEnd      // D
	ActChangeToEnd      // C
	ActSubstitute       // s
	ActSubstituteLine   // S
	ActYankLine         // Y
	ActPutAfter         // p
	ActPutBefore        // P
	ActJoin             // J
	ActJoinRaw          // gJ
	ActReplaceChar      // r{char}
	ActToggleCase       // ~
	ActReplaceMode      // R

	// History
	ActUndo // u
	ActRedo // <C-r>

	// Marks and position lists
	ActSetMark     // m{char}
	ActJumpOlder   // <C-o>
	ActJumpNewer   // <C-i>
	ActChangeOlder // g;
	ActChangeNewer // g,

	// Viewport
	ActScrollHalfDown // <C-d>
	ActScrollHalfUp   // <C-u>
	ActPageDown       // <C-f>
	ActPageUp         // <C-b>

	// Layout
	ActWindow // <C-w>{char}

	// Mode changes
	ActCommandLine // :
	ActVisual      // v
	ActVisualLine  // V
	ActVisualBlock // <C-v>
	ActReselect    // gv
	ActSwapEnds    // o in Visual mode

	// Repetition
	ActRepeat  // .
	ActRecord  // q{reg} and q
	ActExecute // @{reg}

	numActions
)

var actionKeys = [numActions]string{
	ActNone:             "",
	ActInsert:           "i",
	ActAppend:           "a",
	ActInsertLineStart:  "I",
	ActAppendLineEnd:    "A",
	ActOpenBelow:        "o",
	ActOpenAbove:        "O",
	ActDeleteChar:       "x",
	ActDeleteCharBefore: "X",
	ActDeleteToEnd:      "D",
	ActChangeToEnd:      "C",
	ActSubstitute:       "s",
	ActSubstituteLine:   "S",
	ActYankLine:         "Y",
	ActPutAfter:         "p",
	ActPutBefore:        "P",
	ActJoin:             "J",
	ActJoinRaw:          "gJ",
	ActReplaceChar:      "r",
	ActToggleCase:       "~",
	ActReplaceMode:      "R",
	ActUndo:             "u",
	ActRedo:             "<C-r>",
	ActSetMark:          "m",
	ActJumpOlder:        "<C-o>",
	ActJumpNewer:        "<C-i>",
	ActChangeOlder:      "g;",
	ActChangeNewer:      "g,",
	ActScrollHalfDown:   "<C-d>",
	ActScrollHalfUp:     "<C-u>",
	ActPageDown:         "<C-f>",
	ActPageUp:           "<C-b>",
	ActWindow:           "<C-w>",
	ActCommandLine:      ":",
	ActVisual:           "v",
	ActVisualLine:       "V",
	ActVisualBlock:      "<C-v>",
	ActReselect:         "gv",
	ActSwapEnds:         "o",
	ActRepeat:           ".",
	ActRecord:           "q",
	ActExecute:          "@",
}

// String returns the keys that invoke the action.
func (a Action) String() string {
	if a < numActions {
		return actionKeys[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// IsChange reports whether the action modifies the buffer and is
// therefore repeated by '.'.
func (a Action) IsChange() bool {
	switch a {
	case ActInsert, ActAppend, ActInsertLineStart, ActAppendLineEnd, ActOpenBelow, ActOpenAbove,
		ActDeleteChar, ActDeleteCharBefore, ActDeleteToEnd, ActChangeToEnd, ActSubstitute,
		ActSubstituteLine, ActPutAfter, ActPutBefore, ActJoin, ActJoinRaw, ActReplaceChar,
		ActToggleCase, ActReplaceMode:
		return true
	}
	return false
}

// EntersInsert reports whether the action ends in insert mode.
func (a Action) EntersInsert() bool {
	switch a {
	case ActInsert, ActAppend, ActInsertLineStart, ActAppendLineEnd, ActOpenBelow, ActOpenAbove,
		ActChangeToEnd, ActSubstitute, ActSubstituteLine:
		return true
	}
	return false
}

// NeedsChar reports whether the action takes a character argument.
func (a Action) NeedsChar() bool {
	switch a {
	case ActReplaceChar, ActSetMark, ActRecord, ActExecute, ActWindow:
		return true
	}
	return false
}

// normalActions maps unmodified keys to Normal mode actions.
var normalActions = map[rune]Action{
	'i': ActInsert,
	'a': ActAppend,
	'I': ActInsertLineStart,
	'A': ActAppendLineEnd,
	'o': ActOpenBelow,
	'O': ActOpenAbove,
	'x': ActDeleteChar,
	'X': ActDeleteCharBefore,
	'D': ActDeleteToEnd,
	'C': ActChangeToEnd,
	's': ActSubstitute,
	'S': ActSubstituteLine,
	'Y': ActYankLine,
	'p': ActPutAfter,
	'P': ActPutBefore,
	'J': ActJoin,
	'r': ActReplaceChar,
	'~': ActToggleCase,
	'R': ActReplaceMode,
	'u': ActUndo,
	'm': ActSetMark,
	':': ActCommandLine,
	'v': ActVisual,
	'V': ActVisualLine,
	'.': ActRepeat,
	'q': ActRecord,
	'@': ActExecute,
}

// visualActions maps unmodified keys to Visual mode actions. Keys that
// operate on the selection are in visualOperators.
var visualActions = map[rune]Action{
	'o': ActSwapEnds,
	'O': ActSwapEnds,
	'I': ActInsertLineStart,
	'A': ActAppendLineEnd,
	'J': ActJoin,
	'p': ActPutAfter,
	'P': ActPutBefore,
	'r': ActReplaceChar,
	'm': ActSetMark,
	':': ActCommandLine,
	'v': ActVisual,
	'V': ActVisualLine,
}

// ctrlActions maps Ctrl-letter keys to actions in both Normal and Visual
// mode.
var ctrlActions = map[rune]Action{
	'r': ActRedo,
	'o': ActJumpOlder,
	'i': ActJumpNewer,
	'd': ActScrollHalfDown,
	'u': ActScrollHalfUp,
	'f': ActPageDown,
	'b': ActPageUp,
	'w': ActWindow,
	'v': ActVisualBlock,
	'q': ActVisualBlock,
}

// gActions maps the key after g to an action.
var gActions = map[rune]Action{
	'J': ActJoinRaw,
	'v': ActReselect,
	';': ActChangeOlder,
	',': ActChangeNewer,
}

// specialActions maps non-character keys to Normal mode actions.
var specialActions = map[key.Key]Action{
	key.KeyDelete: ActDeleteChar,
	key.KeyInsert: ActInsert,
	key.KeyTab:    ActJumpNewer,
}
