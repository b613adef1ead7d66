package motion

import "fmt"

// ObjectKind identifies a text object.
type ObjectKind uint8

const (
	NoObject ObjectKind = iota

	Word        // iw aw
	BigWord     // iW aW
	DoubleQuote // i" a"
	SingleQuote // i' a'
	BackQuote   // i` a`
	Paren       // i( a( ib ab
	Brace       // i{ a{ iB aB
	Bracket     // i[ a[
	Angle       // i< a<
	Paragraph   // ip ap
)

// String returns the key that names the object after i or a.
func (k ObjectKind) String() string {
	switch k {
	case NoObject:
		return ""
	case Word:
		return "w"
	case BigWord:
		return "W"
	case DoubleQuote:
		return `"`
	case SingleQuote:
		return "'"
	case BackQuote:
		return "`"
	case Paren:
		return "("
	case Brace:
		return "{"
	case Bracket:
		return "["
	case Angle:
		return "<"
	case Paragraph:
		return "p"
	default:
		return fmt.Sprintf("ObjectKind(%d)", k)
	}
}

// ObjectForKey returns the object named by r after i or a.
func ObjectForKey(r rune) (ObjectKind, bool) {
	switch r {
	case 'w':
		return Word, true
	case 'W':
		return BigWord, true
	case '"':
		return DoubleQuote, true
	case '\'':
		return SingleQuote, true
	case '`':
		return BackQuote, true
	case '(', ')', 'b':
		return Paren, true
	case '{', '}', 'B':
		return Brace, true
	case '[', ']':
		return Bracket, true
	case '<', '>':
		return Angle, true
	case 'p':
		return Paragraph, true
	}
	return NoObject, false
}

// pair returns the delimiters of a quote or bracket object.
func (k ObjectKind) pair() (open, close byte) {
	switch k {
	case DoubleQuote:
		return '"', '"'
	case SingleQuote:
		return '\'', '\''
	case BackQuote:
		return '`', '`'
	case Paren:
		return '(', ')'
	case Brace:
		return '{', '}'
	case Bracket:
		return '[', ']'
	case Angle:
		return '<', '>'
	case NoObject, Word, BigWord, Paragraph:
	}
	return 0, 0
}

// Object is a text object with its inner/around variant.
type Object struct {
	Kind  ObjectKind
	Inner bool
}

// String returns the keys of the object, such as "iw" or "a(".
func (o Object) String() string {
	if o.Kind == NoObject {
		return ""
	}
	if o.Inner {
		return "i" + o.Kind.String()
	}
	return "a" + o.Kind.String()
}

// IsZero reports whether no object is set.
func (o Object) IsZero() bool {
	return o.Kind == NoObject
}
