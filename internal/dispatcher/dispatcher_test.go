package dispatcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/dispatcher/ex"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/mode"
)

func newSession(t *testing.T, text string, opts ...dispatcher.Option) *dispatcher.Dispatcher {
	t.Helper()
	d := dispatcher.New(text, opts...)
	require.NotNil(t, d)
	require.Equal(t, mode.Normal, d.Mode())
	return d
}

func text(d *dispatcher.Dispatcher) string {
	return d.Current().Text()
}

func regValue(t *testing.T, d *dispatcher.Dispatcher, name rune) register.Value {
	t.Helper()
	v, err := d.Registers().Get(name)
	require.NoError(t, err)
	return v
}

// ============================================================================
// Operators and counts
// ============================================================================

func TestCountComposition(t *testing.T) {
	a := newSession(t, "a b c d e f g h")
	a.SubmitKeys("3d2w")

	b := newSession(t, "a b c d e f g h")
	b.SubmitKeys("6dw")

	assert.Equal(t, "g h", text(a))
	assert.Equal(t, text(b), text(a))
}

func TestDeleteWordAtEndOfLineIsLinewise(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "last line", in: "foo\n", want: ""},
		{name: "followed by a line", in: "foo\nbar", want: "bar"},
		{name: "indented", in: "  foo\nbar", want: "bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newSession(t, tt.in)
			d.SubmitKeys("^dw")
			assert.Equal(t, tt.want, text(d))
		})
	}
}

func TestFailedTextObjectChangesNothing(t *testing.T) {
	d := newSession(t, "foo bar")
	d.SubmitKeys(`di"`)

	assert.Equal(t, "foo bar", text(d))
	assert.Equal(t, mode.Normal, d.Mode())
	assert.False(t, d.Current().History().CanUndo())
}

func TestChangeInsideQuotes(t *testing.T) {
	d := newSession(t, `say "hi" now`)
	d.SubmitKeys(`fhci"yo<Esc>`)

	assert.Equal(t, `say "yo" now`, text(d))
	assert.Equal(t, mode.Normal, d.Mode())
}

func TestChangeEmptyObjectInsertsInside(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keys string
		want string
	}{
		{name: "parens", in: "f()", keys: "f(ci(x<Esc>", want: "f(x)"},
		{name: "quotes", in: `a "" b`, keys: `f"ci"x<Esc>`, want: `a "x" b`},
		{name: "brackets", in: "a[]", keys: "f[ci[x<Esc>", want: "a[x]"},
		{name: "braces across lines", in: "f {\n}", keys: "f{ci{x<Esc>", want: "f {\nx}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newSession(t, tt.in)
			d.SubmitKeys(tt.keys)
			assert.Equal(t, tt.want, text(d))
			assert.Equal(t, mode.Normal, d.Mode())
		})
	}
}

func TestChangeWordStopsAtWordEnd(t *testing.T) {
	d := newSession(t, "foo bar")
	d.SubmitKeys("cwbaz<Esc>")
	assert.Equal(t, "baz bar", text(d))
}

func TestDeleteRotatesNumberedRegisters(t *testing.T) {
	d := newSession(t, "a\nb\nc\n")
	d.SubmitKeys("dddd")

	assert.Equal(t, "c\n", text(d))
	assert.Equal(t, "b\n", regValue(t, d, '1').Text)
	assert.Equal(t, "a\n", regValue(t, d, '2').Text)
	assert.Equal(t, "b\n", regValue(t, d, '"').Text)
}

func TestPutBlackHoleIsSilent(t *testing.T) {
	d := newSession(t, "abc")
	out := d.SubmitKeys(`"_p`)

	assert.Equal(t, "abc", text(d))
	assert.Empty(t, out.Message)
	assert.Equal(t, mode.Normal, d.Mode())
}

func TestYankAndPut(t *testing.T) {
	t.Run("charwise", func(t *testing.T) {
		d := newSession(t, "abc")
		d.SubmitKeys("ylp")
		assert.Equal(t, "aabc", text(d))
		assert.Equal(t, 1, d.Snapshot().Offset)
	})
	t.Run("linewise after", func(t *testing.T) {
		d := newSession(t, "one\ntwo")
		d.SubmitKeys("yyp")
		assert.Equal(t, "one\none\ntwo", text(d))
		assert.Equal(t, 1, d.Snapshot().Cursor.Line)
	})
	t.Run("linewise before", func(t *testing.T) {
		d := newSession(t, "one\ntwo")
		d.SubmitKeys("jyyP")
		assert.Equal(t, "one\ntwo\ntwo", text(d))
		assert.Equal(t, 1, d.Snapshot().Cursor.Line)
	})
	t.Run("named register", func(t *testing.T) {
		d := newSession(t, "one two")
		d.SubmitKeys(`"ayiw`)
		assert.Equal(t, "one", regValue(t, d, 'a').Text)
		assert.Equal(t, "one", regValue(t, d, '"').Text)
	})
}

func TestJoin(t *testing.T) {
	d := newSession(t, "a\n  b\nc")
	d.SubmitKeys("J")
	assert.Equal(t, "a b\nc", text(d))
}

func TestShiftUsesShiftWidth(t *testing.T) {
	d := newSession(t, "a")
	d.SubmitKeys(":set sw=4<CR>>>")
	assert.Equal(t, "    a", text(d))
	assert.Equal(t, 4, d.Settings().ShiftWidth)
}

// ============================================================================
// Undo and repeat
// ============================================================================

func TestUndoRedo(t *testing.T) {
	d := newSession(t, "hello")
	d.SubmitKeys("xx")
	require.Equal(t, "llo", text(d))

	d.SubmitKeys("u")
	assert.Equal(t, "ello", text(d))
	d.SubmitKeys("u")
	assert.Equal(t, "hello", text(d))
	d.SubmitKeys("<C-r>")
	assert.Equal(t, "ello", text(d))
}

func TestInsertIsOneUndoUnit(t *testing.T) {
	d := newSession(t, "x")
	d.SubmitKeys("ione two<CR>three<Esc>")
	require.Equal(t, "one two\nthreex", text(d))

	d.SubmitKeys("u")
	assert.Equal(t, "x", text(d))
}

func TestRepeatWithNewCount(t *testing.T) {
	d := newSession(t, "abcdefgh")
	d.SubmitKeys("x")
	require.Equal(t, "bcdefgh", text(d))

	d.SubmitKeys("3.")
	assert.Equal(t, "efgh", text(d))

	// the new count is kept
	d.SubmitKeys(".")
	assert.Equal(t, "h", text(d))
}

func TestRepeatInsert(t *testing.T) {
	d := newSession(t, "a\nb")
	d.SubmitKeys("Ax<Esc>j.")
	assert.Equal(t, "ax\nbx", text(d))

	// one undo reverts the repeated insert
	d.SubmitKeys("u")
	assert.Equal(t, "ax\nb", text(d))
}

// ============================================================================
// Macros
// ============================================================================

func TestMacroStopsOnFailure(t *testing.T) {
	d := newSession(t, "1\n2\n3")
	d.SubmitKeys("qaA!<Esc>jq")
	require.Equal(t, "A!<Esc>j", regValue(t, d, 'a').Text)

	// j fails on the last line and ends the playback early
	d.SubmitKeys("5@a")
	assert.Equal(t, "1!\n2!\n3!", text(d))
}

func TestEmptyMacroIsNoop(t *testing.T) {
	d := newSession(t, "abc")
	out := d.SubmitKeys("@b")
	assert.Equal(t, "abc", text(d))
	assert.Empty(t, out.Message)
}

func TestRecursiveMacroIsStopped(t *testing.T) {
	d := newSession(t, "abc")
	d.SubmitKeys("qaq")
	d.SubmitKeys("qa@aq")
	require.Equal(t, "@a", regValue(t, d, 'a').Text)

	out := d.SubmitKeys("@a")
	assert.Contains(t, out.Message, "E169")
	assert.Equal(t, mode.Normal, d.Mode())
}

func TestRepeatLastCommandLine(t *testing.T) {
	d := newSession(t, "a\nb\nc")
	d.SubmitKeys(":d<CR>")
	require.Equal(t, "b\nc", text(d))

	d.SubmitKeys("@:")
	assert.Equal(t, "c", text(d))
}

// ============================================================================
// Visual mode
// ============================================================================

func TestVisualYank(t *testing.T) {
	d := newSession(t, "one two three")
	d.SubmitKeys("vey")

	assert.Equal(t, mode.Normal, d.Mode())
	assert.Equal(t, "one", regValue(t, d, '0').Text)
	assert.Equal(t, "one two three", text(d))
}

func TestVisualLineDelete(t *testing.T) {
	d := newSession(t, "a\nb\nc")
	d.SubmitKeys("jVd")
	assert.Equal(t, "a\nc", text(d))
	assert.Equal(t, register.Linewise, regValue(t, d, '"').Shape)
}

func TestVisualBlockDelete(t *testing.T) {
	d := newSession(t, "abc\ndef\nghi")
	d.SubmitKeys("<C-v>jld")
	assert.Equal(t, "c\nf\nghi", text(d))
	assert.Equal(t, register.Blockwise, regValue(t, d, '"').Shape)
}

func TestVisualEscapeKeepsText(t *testing.T) {
	d := newSession(t, "abc")
	out := d.SubmitKeys("vl<Esc>")
	assert.Equal(t, mode.Normal, out.Mode)
	assert.Nil(t, d.Snapshot().Selection)
}

// ============================================================================
// Command line
// ============================================================================

func TestSubstitute(t *testing.T) {
	d := newSession(t, "foo foo\nfoo")
	out := d.SubmitKeys(":%s/foo/bar/g<CR>")

	assert.Equal(t, "bar bar\nbar", text(d))
	assert.Equal(t, "3 substitutions on 2 lines", out.Message)
	assert.Equal(t, mode.Normal, d.Mode())

	d.SubmitKeys("u")
	assert.Equal(t, "foo foo\nfoo", text(d))
}

func TestSubstituteNoMatch(t *testing.T) {
	d := newSession(t, "abc")
	out := d.SubmitKeys(":s/x/y/<CR>")
	assert.Contains(t, out.Message, "E486")
	assert.Equal(t, "abc", text(d))
}

func TestGotoLine(t *testing.T) {
	d := newSession(t, "a\nb\n  c")
	d.SubmitKeys(":3<CR>")
	assert.Equal(t, 2, d.Snapshot().Cursor.Line)
	assert.Equal(t, 2, d.Snapshot().Cursor.Column)
}

func TestSearch(t *testing.T) {
	d := newSession(t, "one two one")
	d.SubmitKeys("/one<CR>")
	assert.Equal(t, 8, d.Snapshot().Offset)
	assert.Equal(t, "one", regValue(t, d, '/').Text)
}

func TestUnknownCommandIsForwarded(t *testing.T) {
	t.Run("without host", func(t *testing.T) {
		d := newSession(t, "abc")
		out := d.SubmitKeys(":w out.txt<CR>")
		assert.Equal(t, []string{"w out.txt"}, out.Forwarded)
	})
	t.Run("with host", func(t *testing.T) {
		var got ex.Command
		host := dispatcher.HostFunc(func(cmd ex.Command) (string, error) {
			got = cmd
			return "written", nil
		})
		d := newSession(t, "abc", dispatcher.WithHost(host))
		out := d.SubmitKeys(":w! out.txt<CR>")

		assert.Empty(t, out.Forwarded)
		assert.Equal(t, "written", out.Message)
		assert.Equal(t, "w", got.Name)
		assert.True(t, got.Bang)
		assert.Equal(t, "out.txt", got.Args)
	})
}

func TestCommandLineEscape(t *testing.T) {
	d := newSession(t, "abc")
	out := d.SubmitKeys(":d")
	assert.Equal(t, mode.CommandLine, out.Mode)
	assert.Equal(t, ":d", out.PendingEcho)

	out = d.SubmitKeys("<Esc>")
	assert.Equal(t, mode.Normal, out.Mode)
	assert.Equal(t, "abc", text(d))
}

// ============================================================================
// Windows and buffers
// ============================================================================

func TestSplitAndClose(t *testing.T) {
	d := newSession(t, "abc")
	d.SubmitKeys("<C-w>s")
	assert.Equal(t, 2, d.Layout().Len())

	d.SubmitKeys(":close<CR>")
	assert.Equal(t, 1, d.Layout().Len())

	out := d.SubmitKeys("<C-w>q")
	assert.Equal(t, []string{"quit"}, out.Forwarded)
}

func TestShowUnknownBuffer(t *testing.T) {
	d := newSession(t, "abc")
	err := d.Show("missing")
	assert.ErrorIs(t, err, dispatcher.ErrUnknownBuffer)
}

func TestExternalEditIsUndoable(t *testing.T) {
	d := newSession(t, "hello world")
	e := d.Current()
	require.NoError(t, d.ApplyExternalEdit(buffer.Range{Start: 0, End: 5}, "howdy", "format"))
	assert.Equal(t, "howdy world", e.Text())

	d.SubmitKeys("u")
	assert.Equal(t, "hello world", e.Text())
}

// ============================================================================
// Mappings
// ============================================================================

func TestInsertMappingLeavesInsert(t *testing.T) {
	d := newSession(t, "")
	d.SubmitKeys(":inoremap jk <lt>Esc><CR>")
	d.SubmitKeys("ihijk")
	assert.Equal(t, "hi", text(d))
	assert.Equal(t, mode.Normal, d.Mode())
}

func TestNormalMapping(t *testing.T) {
	m := keymap.New()
	require.NoError(t, m.Set(keymap.Normal, "Q", "dd"))
	d := newSession(t, "one\ntwo", dispatcher.WithKeymap(m))
	d.SubmitKeys("Q")
	assert.Equal(t, "two", text(d))

	out := d.SubmitKeys(":nmap<CR>")
	assert.Contains(t, out.Message, "Q")

	d.SubmitKeys(":nunmap Q<CR>")
	assert.Equal(t, 0, m.Len())
}

func TestAmbiguousMappingWaits(t *testing.T) {
	m := keymap.New()
	require.NoError(t, m.Set(keymap.Normal, "xx", "dd"))
	d := newSession(t, "abc\ndef", dispatcher.WithKeymap(m))

	out := d.SubmitKeys("x")
	assert.Equal(t, "abc\ndef", text(d))
	assert.Equal(t, "x", out.PendingEcho)

	d.FlushPending()
	assert.Equal(t, "bc\ndef", text(d))

	d.SubmitKeys("xx")
	assert.Equal(t, "def", text(d))
}

func TestMappingNotAppliedToArguments(t *testing.T) {
	m := keymap.New()
	require.NoError(t, m.Set(keymap.Normal, "b", "dd"))
	d := newSession(t, "abc", dispatcher.WithKeymap(m))
	d.SubmitKeys("rb")
	assert.Equal(t, "bbc", text(d))
}

func TestMacroReplaysThroughMappings(t *testing.T) {
	m := keymap.New()
	require.NoError(t, m.Set(keymap.Insert, "jk", "<Esc>"))
	d := newSession(t, "1\n2", dispatcher.WithKeymap(m))

	d.SubmitKeys("qaA!jkjq")
	assert.Equal(t, "1!\n2", text(d))
	d.SubmitKeys("@a")
	assert.Equal(t, "1!\n2!", text(d))
	assert.Equal(t, mode.Normal, d.Mode())
}
