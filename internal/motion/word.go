package motion

// wordForward returns the start of the next word. Empty lines count as
// words. At the last word it returns the end of the buffer.
func wordForward(t text, off int, big bool) int {
	if off >= t.n {
		return off
	}
	o := off
	if c := t.class(o, big); c != classBlank {
		for o < t.n && t.class(o, big) == c {
			o = t.next(o)
		}
	}
	for o < t.n && t.class(o, big) == classBlank {
		if o != off && t.emptyLine(o) {
			break
		}
		o = t.next(o)
	}
	return o
}

// wordBackward returns the start of the previous word.
func wordBackward(t text, off int, big bool) int {
	if off == 0 {
		return off
	}
	o := t.prev(off)
	for o > 0 && t.class(o, big) == classBlank {
		if t.emptyLine(o) {
			return o
		}
		o = t.prev(o)
	}
	c := t.class(o, big)
	for o > 0 {
		p := t.prev(o)
		if t.class(p, big) != c {
			break
		}
		o = p
	}
	return o
}

// wordEnd returns the end of the current or next word. Empty lines are
// skipped.
func wordEnd(t text, off int, big bool) int {
	o := t.next(off)
	if o >= t.n {
		return off
	}
	for o < t.n && t.class(o, big) == classBlank {
		o = t.next(o)
	}
	if o >= t.n {
		return off
	}
	c := t.class(o, big)
	for {
		n := t.next(o)
		if n >= t.n || t.class(n, big) != c {
			return o
		}
		o = n
	}
}

// wordEndBackward returns the end of the previous word (ge).
func wordEndBackward(t text, off int, big bool) int {
	if off == 0 {
		return off
	}
	c := t.class(off, big)
	o := t.prev(off)
	if c != classBlank {
		for t.class(o, big) == c {
			if o == 0 {
				return 0
			}
			o = t.prev(o)
		}
	}
	for t.class(o, big) == classBlank {
		if t.emptyLine(o) || o == 0 {
			return o
		}
		o = t.prev(o)
	}
	return o
}
