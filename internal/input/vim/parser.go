package vim

import (
	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/motion"
)

// ParseStatus indicates the result of parsing a key event.
type ParseStatus uint8

const (
	// StatusPending indicates more input is needed.
	StatusPending ParseStatus = iota

	// StatusComplete indicates a complete command was parsed.
	StatusComplete

	// StatusInvalid indicates the sequence is invalid.
	StatusInvalid

	// StatusCancelled indicates Escape abandoned the pending command.
	StatusCancelled
)

// String returns a string representation of the status.
func (s ParseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseState represents the current state of the parser.
type ParseState uint8

const (
	// StateInitial is waiting for a count, register, operator, motion or
	// action.
	StateInitial ParseState = iota

	// StateRegister is waiting for a register name after ".
	StateRegister

	// StateOperator has received an operator, waiting for a count,
	// motion or text object.
	StateOperator

	// StateGPrefix has received 'g', waiting for second key.
	StateGPrefix

	// StateTextObjectPrefix has received 'i' or 'a', waiting for text object.
	StateTextObjectPrefix

	// StateCharArg is waiting for the character argument of f F t T ` '
	// r m q @ or <C-w>.
	StateCharArg
)

// String returns a string representation of the state.
func (s ParseState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateRegister:
		return "register"
	case StateOperator:
		return "operator"
	case StateGPrefix:
		return "gPrefix"
	case StateTextObjectPrefix:
		return "textObjectPrefix"
	case StateCharArg:
		return "charArg"
	default:
		return "unknown"
	}
}

// ParseResult contains the result of parsing a key event.
type ParseResult struct {
	// Status indicates the parse result.
	Status ParseStatus

	// Command is the parsed command (if Status == StatusComplete).
	Command *Command

	// PendingDisplay shows the pending keys (for the status line).
	PendingDisplay string

	// Err is an *InvalidCommandError when Status == StatusInvalid.
	Err error
}

// Parser parses Vim-style key sequences into commands. It holds only the
// pending command; it is created empty and reset on completion, on
// invalid input and on Escape.
type Parser struct {
	state ParseState

	// Mode flags set by the dispatcher
	visual    bool
	recording bool

	// Accumulated state
	prefix     int      // count typed before a register
	count1     int      // Pre-operator count, 0 when none was typed
	count2     int      // Post-operator count
	register   rune     // Selected register
	operator   Operator // Pending operator
	inner      bool     // 'i' rather than 'a' for text objects
	charMotion motion.Kind
	charAction Action

	keys []key.Event
}

// NewParser creates a new Vim command parser.
func NewParser() *Parser {
	return &Parser{
		keys: make([]key.Event, 0, 8),
	}
}

// Reset clears all parser state.
func (p *Parser) Reset() {
	p.state = StateInitial
	p.prefix = 0
	p.count1 = 0
	p.count2 = 0
	p.register = 0
	p.operator = OpNone
	p.inner = false
	p.charMotion = motion.None
	p.charAction = ActNone
	p.keys = p.keys[:0]
}

// SetVisual switches between the Normal and Visual mode key tables.
func (p *Parser) SetVisual(visual bool) {
	p.visual = visual
}

// SetRecording tells the parser a macro is being recorded, so that q
// ends the recording instead of waiting for a register.
func (p *Parser) SetRecording(recording bool) {
	p.recording = recording
}

// State returns the current parser state.
func (p *Parser) State() ParseState {
	return p.state
}

// Pending reports whether a command has been started.
func (p *Parser) Pending() bool {
	return len(p.keys) > 0
}

// OperatorPending reports whether an operator waits for its motion.
func (p *Parser) OperatorPending() bool {
	return p.operator != OpNone
}

// PendingKeys returns the pending keys in key notation.
func (p *Parser) PendingKeys() string {
	return key.Format(p.keys)
}

// Parse processes a key event and returns the result.
func (p *Parser) Parse(ev key.Event) ParseResult {
	if ev.IsEscape() {
		p.Reset()
		return ParseResult{Status: StatusCancelled}
	}
	p.keys = append(p.keys, ev)

	switch p.state {
	case StateInitial:
		return p.parseInitial(ev)
	case StateRegister:
		return p.parseRegister(ev)
	case StateOperator:
		return p.parseOperator(ev)
	case StateGPrefix:
		return p.parseGPrefix(ev)
	case StateTextObjectPrefix:
		return p.parseTextObjectPrefix(ev)
	case StateCharArg:
		return p.parseCharArg(ev)
	default:
		return p.invalid()
	}
}

// parseInitial handles input in the initial state.
func (p *Parser) parseInitial(ev key.Event) ParseResult {
	// Count prefix ('0' alone is a motion)
	if addDigit(&p.count1, ev) {
		return p.pending()
	}

	if ev.IsRune() {
		r := ev.Rune
		switch r {
		case '"':
			p.state = StateRegister
			return p.pending()
		case 'g':
			p.state = StateGPrefix
			return p.pending()
		}

		if p.visual {
			if vo, ok := visualOperators[r]; ok {
				return p.complete(&Command{Operator: vo.op, Linewise: vo.linewise})
			}
			if r == 'i' || r == 'a' {
				p.inner = r == 'i'
				p.state = StateTextObjectPrefix
				return p.pending()
			}
			if a, ok := visualActions[r]; ok {
				return p.action(a)
			}
		} else {
			if op, ok := GetOperator(r); ok {
				p.operator = op
				p.state = StateOperator
				return p.pending()
			}
			if a, ok := normalActions[r]; ok {
				return p.action(a)
			}
		}
	}

	if k, ok := GetMotion(ev); ok {
		return p.motion(k)
	}

	if ev.Key == key.KeyRune && ev.Modifiers == key.ModCtrl {
		if a, ok := ctrlActions[ev.Rune]; ok {
			return p.action(a)
		}
	}

	if a, ok := specialActions[ev.Key]; ok && !p.visual && ev.Modifiers == key.ModNone {
		return p.action(a)
	}

	return p.invalid()
}

// parseRegister handles input after ".
func (p *Parser) parseRegister(ev key.Event) ParseResult {
	if !ev.IsRune() || !register.IsValid(ev.Rune) {
		return p.invalid()
	}
	p.register = ev.Rune

	// a count typed before the register multiplies the one after it
	if p.count1 > 0 {
		p.prefix = multiplyCounts(p.prefix, p.count1)
		p.count1 = 0
	}
	p.state = StateInitial
	return p.pending()
}

// parseOperator handles input after an operator key.
func (p *Parser) parseOperator(ev key.Event) ParseResult {
	if addDigit(&p.count2, ev) {
		return p.pending()
	}

	if ev.IsRune() {
		r := ev.Rune
		switch {
		case r == p.operator.doubleKey():
			// dd, cc, yy, >>, <<, guu, gUU, g~~
			return p.complete(&Command{Operator: p.operator, Linewise: true})
		case r == 'g':
			p.state = StateGPrefix
			return p.pending()
		case r == 'i' || r == 'a':
			p.inner = r == 'i'
			p.state = StateTextObjectPrefix
			return p.pending()
		}
	}

	if k, ok := GetMotion(ev); ok {
		return p.motion(k)
	}
	return p.invalid()
}

// parseGPrefix handles input after 'g'.
func (p *Parser) parseGPrefix(ev key.Event) ParseResult {
	if !ev.IsRune() {
		return p.invalid()
	}
	r := ev.Rune

	if k, ok := gMotions[r]; ok {
		return p.motion(k)
	}

	op, isOp := GetGOperator(r)
	if p.operator != OpNone {
		// gugu, gUgU, g~g~
		if isOp && op == p.operator {
			return p.complete(&Command{Operator: p.operator, Linewise: true})
		}
		return p.invalid()
	}
	if isOp {
		if p.visual {
			return p.complete(&Command{Operator: op})
		}
		p.operator = op
		p.state = StateOperator
		return p.pending()
	}

	if a, ok := gActions[r]; ok {
		return p.action(a)
	}
	return p.invalid()
}

// parseTextObjectPrefix handles input after 'i' or 'a'.
func (p *Parser) parseTextObjectPrefix(ev key.Event) ParseResult {
	if !ev.IsRune() {
		return p.invalid()
	}
	kind, ok := motion.ObjectForKey(ev.Rune)
	if !ok {
		return p.invalid()
	}
	return p.complete(&Command{
		Operator: p.operator,
		Object:   motion.Object{Kind: kind, Inner: p.inner},
	})
}

// parseCharArg handles the character after f F t T ` ' r m q @ <C-w>.
func (p *Parser) parseCharArg(ev key.Event) ParseResult {
	r, ok := charArg(ev, p.charAction)
	if !ok {
		return p.invalid()
	}

	if p.charMotion != motion.None {
		return p.complete(&Command{
			Operator: p.operator,
			Motion:   motion.Motion{Kind: p.charMotion, Char: r},
		})
	}

	switch p.charAction {
	case ActRecord:
		if !register.IsValid(r) || register.IsReadOnly(r) || r == '_' {
			return p.invalid()
		}
	case ActExecute:
		if r != '@' && !register.IsValid(r) {
			return p.invalid()
		}
	}
	return p.complete(&Command{Action: p.charAction, Char: r})
}

// charArg extracts the argument character. r accepts Enter and Tab as
// the characters they insert; <C-w> accepts Ctrl-letters as the letter.
func charArg(ev key.Event, a Action) (rune, bool) {
	switch {
	case ev.IsRune():
		return ev.Rune, true
	case a == ActReplaceChar && ev.Is(key.KeyEnter):
		return '\n', true
	case a == ActReplaceChar && ev.Is(key.KeyTab):
		return '\t', true
	case a == ActWindow && ev.Key == key.KeyRune && ev.Modifiers == key.ModCtrl:
		return ev.Rune, true
	}
	return 0, false
}

// motion completes a motion, or waits for its character argument.
func (p *Parser) motion(k motion.Kind) ParseResult {
	if k.NeedsChar() {
		p.charMotion = k
		p.state = StateCharArg
		return p.pending()
	}
	return p.complete(&Command{Operator: p.operator, Motion: motion.Motion{Kind: k}})
}

// action completes an action, or waits for its character argument.
func (p *Parser) action(a Action) ParseResult {
	if a.NeedsChar() && !(a == ActRecord && p.recording) {
		p.charAction = a
		p.state = StateCharArg
		return p.pending()
	}
	return p.complete(&Command{Action: a})
}

func (p *Parser) pending() ParseResult {
	return ParseResult{
		Status:         StatusPending,
		PendingDisplay: p.PendingKeys(),
	}
}

func (p *Parser) invalid() ParseResult {
	err := &InvalidCommandError{Keys: p.PendingKeys()}
	p.Reset()
	return ParseResult{Status: StatusInvalid, Err: err}
}

// complete fills in the accumulated count, register and keys.
func (p *Parser) complete(cmd *Command) ParseResult {
	if p.prefix > 0 || p.count1 > 0 || p.count2 > 0 {
		cmd.Count = multiplyCounts(p.prefix, p.count1, p.count2)
	}
	cmd.Register = p.register
	cmd.Keys = p.PendingKeys()

	p.Reset()
	return ParseResult{
		Status:  StatusComplete,
		Command: cmd,
	}
}

// maxCount caps counts so that multiplying them cannot overflow.
const maxCount = 999999

// addDigit appends a typed digit to the count *n. A 0 cannot start a
// count; alone it is the motion to the start of the line.
func addDigit(n *int, ev key.Event) bool {
	if !ev.IsDigit() || (*n == 0 && ev.Rune == '0') {
		return false
	}
	*n = min(*n*10+int(ev.Rune-'0'), maxCount)
	return true
}

// multiplyCounts combines the counts of "2d3w". Zero counts were not
// typed and do not contribute.
func multiplyCounts(counts ...int) int {
	total := 1
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		if total > maxCount/c {
			return maxCount
		}
		total = min(total*c, maxCount)
	}
	return total
}
