package key

import "github.com/gdamore/tcell/v2"

// FromTcell converts a terminal key event. Control characters that tcell
// reports as their own keys (Ctrl-A..Ctrl-Z) become Ctrl plus a letter,
// except the ones that double as Tab, Enter and Backspace.
func FromTcell(ev *tcell.EventKey) Event {
	mods := fromTcellMods(ev.Modifiers())
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if mods.Has(ModCtrl) || mods.Has(ModAlt) {
			return runeWithMods(r, mods&^ModShift)
		}
		return Rune(r)
	case tcell.KeyEscape:
		return Event{Key: KeyEscape}
	case tcell.KeyEnter:
		return Event{Key: KeyEnter, Modifiers: mods &^ ModCtrl}
	case tcell.KeyTab:
		return Event{Key: KeyTab}
	case tcell.KeyBacktab:
		return Event{Key: KeyTab, Modifiers: ModShift}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Key: KeyBackspace}
	case tcell.KeyDelete:
		return Event{Key: KeyDelete, Modifiers: mods}
	case tcell.KeyInsert:
		return Event{Key: KeyInsert, Modifiers: mods}
	case tcell.KeyHome:
		return Event{Key: KeyHome, Modifiers: mods}
	case tcell.KeyEnd:
		return Event{Key: KeyEnd, Modifiers: mods}
	case tcell.KeyPgUp:
		return Event{Key: KeyPageUp, Modifiers: mods}
	case tcell.KeyPgDn:
		return Event{Key: KeyPageDown, Modifiers: mods}
	case tcell.KeyUp:
		return Event{Key: KeyUp, Modifiers: mods}
	case tcell.KeyDown:
		return Event{Key: KeyDown, Modifiers: mods}
	case tcell.KeyLeft:
		return Event{Key: KeyLeft, Modifiers: mods}
	case tcell.KeyRight:
		return Event{Key: KeyRight, Modifiers: mods}
	}

	k := ev.Key()
	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return Event{Key: KeyF1 + Key(k-tcell.KeyF1), Modifiers: mods}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return Ctrl(rune('a' + (k - tcell.KeyCtrlA)))
	}
	return Event{}
}

func fromTcellMods(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods = mods.With(ModAlt)
	}
	return mods
}
