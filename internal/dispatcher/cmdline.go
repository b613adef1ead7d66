package dispatcher

import (
	"fmt"
	"strings"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/motion"
)

// cmdline is the line being typed after :, / or ?.
type cmdline struct {
	prompt rune
	text   []rune

	// pending is the command a search completes, such as d/.
	pending *vim.Command

	// returnMode is the mode to go back to, Normal or a Visual mode.
	returnMode mode.Mode
	awaitReg   bool
}

// openCmdline enters Command-line mode with initial text after the prompt.
func (d *Dispatcher) openCmdline(prompt rune, pending *vim.Command, initial string) {
	c := &cmdline{prompt: prompt, text: []rune(initial), returnMode: d.modes.Current()}
	if !c.returnMode.IsVisual() {
		c.returnMode = mode.Normal
	}
	if pending != nil {
		cmd := *pending
		c.pending = &cmd
	}
	d.cmdline = c
	d.setMode(mode.CommandLine)
}

func (d *Dispatcher) closeCmdline() *cmdline {
	c := d.cmdline
	d.cmdline = nil
	d.setMode(c.returnMode)
	return c
}

// cmdlineKey edits the command line, or runs it on Enter.
func (d *Dispatcher) cmdlineKey(ev key.Event) error {
	c := d.cmdline
	if c.awaitReg {
		c.awaitReg = false
		if !ev.IsRune() {
			return nil
		}
		v, err := d.regs.Get(ev.Rune)
		if err != nil {
			return err
		}
		// only the first line fits
		text, _, _ := strings.Cut(v.Text, "\n")
		c.text = append(c.text, []rune(text)...)
		return nil
	}

	switch {
	case ev.IsEscape() || ev.IsCtrl('c'):
		d.closeCmdline()
	case ev.Is(key.KeyEnter) || ev.IsCtrl('m') || ev.IsCtrl('j'):
		return d.submitCmdline(d.closeCmdline())
	case ev.Is(key.KeyBackspace) || ev.IsCtrl('h'):
		if len(c.text) == 0 {
			d.closeCmdline()
			return nil
		}
		c.text = c.text[:len(c.text)-1]
	case ev.IsCtrl('u'):
		c.text = c.text[:0]
	case ev.IsCtrl('w'):
		c.text = c.text[:wordStart(string(c.text), len(c.text))]
	case ev.IsCtrl('r'):
		c.awaitReg = true
	case ev.Is(key.KeyTab):
		c.text = append(c.text, '\t')
	case ev.IsRune():
		c.text = append(c.text, ev.Rune)
	}
	return nil
}

// submitCmdline runs an ex command or completes a search.
func (d *Dispatcher) submitCmdline(c *cmdline) error {
	text := string(c.text)
	if c.prompt == ':' {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		d.lastEx = text
		d.regs.SetReadOnly(':', text)
		return d.runEx(text)
	}

	cmd := vim.Command{Motion: motion.Motion{Kind: motion.SearchForward}}
	if c.pending != nil {
		cmd = *c.pending
	}
	if text == "" {
		if !d.search.IsSet() {
			return motion.ErrNoPreviousPattern
		}
		text = d.search.Pattern
	}
	cmd.Motion.Pattern = text
	cmd.Keys += text + "<CR>"
	return d.run(cmd)
}

// rangeText is the range a count before : expands to.
func rangeText(base string, n int) string {
	return fmt.Sprintf("%s,%s+%d", base, base, n)
}
