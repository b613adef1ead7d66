// Package session saves and restores the editing state of a dispatcher:
// buffer contents, undo and redo stacks, marks, change and jump lists, and
// registers.
//
// # State
//
// Capture walks a dispatcher and returns a State, a plain value that
// serializes to YAML. Apply loads a State into a dispatcher, opening every
// saved buffer under its original id so global marks and jumps keep
// pointing at the right buffer.
//
// # Storage
//
// BoltStore keeps named sessions in a single bbolt file. Each session is
// stored as its YAML encoding, so a saved session can also be written to
// disk with Marshal and inspected by hand.
//
//	store, err := session.OpenBoltStore(path)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//	err = store.Save("work", session.Capture(d))
package session
