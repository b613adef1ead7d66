package rope

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.LineCount() != 1 {
		t.Errorf("New rope should have 1 line, got %d", r.LineCount())
	}
	if r.String() != "" {
		t.Errorf("String() = %q, want empty", r.String())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"with newline", "hello\nworld"},
		{"unicode", "héllo 世界 🌍"},
		{"long", strings.Repeat("abcdefghij", 100)},
		{"very long", strings.Repeat("x\n", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if r.Len() != len(tt.input) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
			if want := strings.Count(tt.input, "\n") + 1; r.LineCount() != want {
				t.Errorf("LineCount() = %d, want %d", r.LineCount(), want)
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   int
		text     string
		expected string
	}{
		{"at start", "world", 0, "hello ", "hello world"},
		{"at end", "hello", 5, " world", "hello world"},
		{"in middle", "helloworld", 5, " ", "hello world"},
		{"into empty", "", 0, "hello", "hello"},
		{"empty string", "hello", 3, "", "hello"},
		{"at rune boundary", "世界", 3, "!", "世!界"},
		{"past end clamps", "ab", 10, "c", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial).Insert(tt.offset, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		expected   string
	}{
		{"prefix", "hello world", 0, 6, "world"},
		{"suffix", "hello world", 5, 11, "hello"},
		{"middle", "hello world", 2, 9, "held"},
		{"all", "hello", 0, 5, ""},
		{"empty range", "hello", 2, 2, "hello"},
		{"inverted range", "hello", 4, 2, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial).Delete(tt.start, tt.end)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestImmutability(t *testing.T) {
	orig := FromString(strings.Repeat("line\n", 500))
	before := orig.String()

	_ = orig.Insert(100, "XYZ")
	_ = orig.Delete(10, 2000)
	_ = orig.Replace(0, 5, "new")

	if orig.String() != before {
		t.Error("operations modified the original rope")
	}
}

func TestLineQueries(t *testing.T) {
	r := FromString("alpha\nbeta\n\ngamma")

	starts := []int{0, 6, 11, 12}
	for line, want := range starts {
		if got := r.LineStart(line); got != want {
			t.Errorf("LineStart(%d) = %d, want %d", line, got, want)
		}
	}
	lines := []string{"alpha", "beta", "", "gamma"}
	for i, want := range lines {
		if got := r.Line(i); got != want {
			t.Errorf("Line(%d) = %q, want %q", i, got, want)
		}
	}
	if got := r.LineStart(10); got != r.Len() {
		t.Errorf("LineStart past end = %d, want %d", got, r.Len())
	}

	for off := 0; off <= r.Len(); off++ {
		want := strings.Count(r.String()[:off], "\n")
		if got := r.LineAt(off); got != want {
			t.Errorf("LineAt(%d) = %d, want %d", off, got, want)
		}
	}
}

func TestRunesBefore(t *testing.T) {
	s := "aé世🌍b"
	r := FromString(s)
	want := 0
	for off := range s {
		if got := r.RunesBefore(off); got != want {
			t.Errorf("RunesBefore(%d) = %d, want %d", off, got, want)
		}
		want++
	}
	if got := r.RunesBefore(len(s)); got != 5 {
		t.Errorf("RunesBefore(end) = %d, want 5", got)
	}
}

func TestByteAt(t *testing.T) {
	r := FromString("abc")
	if b, ok := r.ByteAt(1); !ok || b != 'b' {
		t.Errorf("ByteAt(1) = %q, %v", b, ok)
	}
	if _, ok := r.ByteAt(3); ok {
		t.Error("ByteAt(3) should be out of range")
	}
}

func TestLargeLineIndexAfterEdits(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5000; i++ {
		sb.WriteString("some line of text\n")
	}
	model := sb.String()
	r := FromString(model)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		off := rng.Intn(len(model) + 1)
		if rng.Intn(2) == 0 {
			r = r.Insert(off, "ins\n")
			model = model[:off] + "ins\n" + model[off:]
		} else {
			end := min(off+rng.Intn(40), len(model))
			r = r.Delete(off, end)
			model = model[:off] + model[end:]
		}
	}

	if r.String() != model {
		t.Fatal("rope diverged from model")
	}
	if r.LineCount() != strings.Count(model, "\n")+1 {
		t.Fatalf("LineCount() = %d", r.LineCount())
	}
	line := r.LineCount() / 2
	want := 0
	for i := 0; i < line; i++ {
		want = strings.IndexByte(model[want:], '\n') + want + 1
	}
	if got := r.LineStart(line); got != want {
		t.Errorf("LineStart(%d) = %d, want %d", line, got, want)
	}
	if r.Height() > 16 {
		t.Errorf("tree height %d grew unexpectedly", r.Height())
	}
}

func TestChunksStopsEarly(t *testing.T) {
	r := FromString(strings.Repeat("x", 4*MaxChunkSize))
	calls := 0
	r.Chunks(0, r.Len(), func(string) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("Chunks called fn %d times after stop, want 1", calls)
	}
}
