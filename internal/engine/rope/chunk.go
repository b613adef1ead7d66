package rope

import (
	"strings"
	"unicode/utf8"
)

// Chunk size bounds for leaf text.
const (
	// MaxChunkSize is the largest chunk produced by splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building from a string.
	TargetChunkSize = 192
)

// Summary holds aggregated metrics for a span of text.
type Summary struct {
	Bytes int // UTF-8 byte count
	Runes int // code point count
	Lines int // newline count
}

// Add combines two summaries.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Bytes: s.Bytes + o.Bytes,
		Runes: s.Runes + o.Runes,
		Lines: s.Lines + o.Lines,
	}
}

// Summarize computes the summary of s.
func Summarize(s string) Summary {
	return Summary{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Lines: strings.Count(s, "\n"),
	}
}

// splitChunks cuts s into chunks of roughly TargetChunkSize bytes,
// never cutting inside a UTF-8 sequence.
func splitChunks(s string) []string {
	if s == "" {
		return nil
	}
	chunks := make([]string, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := TargetChunkSize
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			cut = TargetChunkSize
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	return append(chunks, s)
}

// mergeChunks joins adjacent small chunks so repeated edits do not leave
// the leaves fragmented.
func mergeChunks(chunks []string) []string {
	out := chunks[:0:0]
	for _, c := range chunks {
		if c == "" {
			continue
		}
		if n := len(out); n > 0 && len(out[n-1])+len(c) <= TargetChunkSize {
			out[n-1] += c
			continue
		}
		out = append(out, c)
	}
	return out
}
