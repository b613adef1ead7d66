package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzEdits applies an insert and a delete and compares against a string model.
func FuzzEdits(f *testing.F) {
	f.Add("hello\nworld", 3, "xy\n", 1, 4)
	f.Add("", 0, "abc", 0, 1)
	f.Add("日本語", 3, "x", 0, 3)
	f.Add(strings.Repeat("a\n", 300), 250, "z", 100, 400)

	f.Fuzz(func(t *testing.T, initial string, at int, insert string, start, end int) {
		if !utf8.ValidString(initial) || !utf8.ValidString(insert) {
			return
		}
		model := initial
		r := FromString(initial)

		at = clampRune(model, at)
		r = r.Insert(at, insert)
		model = model[:at] + insert + model[at:]

		start, end = clampRune(model, start), clampRune(model, end)
		if start > end {
			start, end = end, start
		}
		r = r.Delete(start, end)
		model = model[:start] + model[end:]

		if r.String() != model {
			t.Fatalf("content mismatch: got %q, want %q", r.String(), model)
		}
		if r.LineCount() != strings.Count(model, "\n")+1 {
			t.Fatalf("LineCount() = %d, want %d", r.LineCount(), strings.Count(model, "\n")+1)
		}
		if r.RuneCount() != utf8.RuneCountInString(model) {
			t.Fatalf("RuneCount() = %d", r.RuneCount())
		}
		for line := 0; line < r.LineCount(); line++ {
			if got, want := r.Line(line), strings.Split(model, "\n")[line]; got != want {
				t.Fatalf("Line(%d) = %q, want %q", line, got, want)
			}
		}
	})
}

// clampRune clamps off into s and backs it up to a rune start.
func clampRune(s string, off int) int {
	off = max(0, min(off, len(s)))
	for off > 0 && off < len(s) && !utf8.RuneStart(s[off]) {
		off--
	}
	return off
}
