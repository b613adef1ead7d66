package vim

import (
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/motion"
)

// motions maps unmodified keys to motions.
var motions = map[rune]motion.Kind{
	'h':  motion.Left,
	'j':  motion.Down,
	'k':  motion.Up,
	'l':  motion.Right,
	' ':  motion.Right,
	'w':  motion.WordForward,
	'b':  motion.WordBackward,
	'e':  motion.WordEnd,
	'W':  motion.BigWordForward,
	'B':  motion.BigWordBackward,
	'E':  motion.BigWordEnd,
	'0':  motion.LineStart,
	'^':  motion.FirstNonBlank,
	'$':  motion.LineEnd,
	'_':  motion.CurrentLine,
	'+':  motion.NextLine,
	'-':  motion.PrevLine,
	'|':  motion.Column,
	'{':  motion.ParagraphBackward,
	'}':  motion.ParagraphForward,
	'G':  motion.FileEnd,
	'H':  motion.ScreenTop,
	'M':  motion.ScreenMiddle,
	'L':  motion.ScreenBottom,
	'f':  motion.FindForward,
	'F':  motion.FindBackward,
	't':  motion.TillForward,
	'T':  motion.TillBackward,
	';':  motion.RepeatFind,
	',':  motion.RepeatFindReverse,
	'%':  motion.MatchPair,
	'/':  motion.SearchForward,
	'?':  motion.SearchBackward,
	'n':  motion.SearchNext,
	'N':  motion.SearchPrev,
	'*':  motion.WordUnderForward,
	'#':  motion.WordUnderBackward,
	'`':  motion.MarkExact,
	'\'': motion.MarkLine,
}

// gMotions maps the key after g to a motion.
var gMotions = map[rune]motion.Kind{
	'g': motion.FileStart,
	'e': motion.WordEndBackward,
	'E': motion.BigWordEndBackward,
	'_': motion.LastNonBlank,
}

// specialMotions maps non-character keys to motions.
var specialMotions = map[key.Key]motion.Kind{
	key.KeyLeft:      motion.Left,
	key.KeyRight:     motion.Right,
	key.KeyUp:        motion.Up,
	key.KeyDown:      motion.Down,
	key.KeyBackspace: motion.Left,
	key.KeyEnter:     motion.NextLine,
	key.KeyHome:      motion.LineStart,
	key.KeyEnd:       motion.LineEnd,
}

// ctrlMotions maps Ctrl-letter keys to motions.
var ctrlMotions = map[rune]motion.Kind{
	'h': motion.Left,
	'j': motion.Down,
	'n': motion.Down,
	'p': motion.Up,
	'm': motion.NextLine,
}

// GetMotion returns the motion bound to an event outside of any prefix.
func GetMotion(ev key.Event) (motion.Kind, bool) {
	var (
		k  motion.Kind
		ok bool
	)
	switch {
	case ev.IsRune():
		k, ok = motions[ev.Rune]
	case ev.Key == key.KeyRune && ev.Modifiers == key.ModCtrl:
		k, ok = ctrlMotions[ev.Rune]
	case ev.Key != key.KeyRune && !ev.Modifiers.Has(key.ModCtrl):
		k, ok = specialMotions[ev.Key]
	}
	return k, ok
}
