// Package mode defines the editor modes and the manager that tracks
// transitions between them.
//
// The modes are a closed set:
//   - Normal: navigation and commands
//   - Insert and Replace: text input
//   - Visual, VisualLine, VisualBlock: character, line and block selection
//   - OperatorPending: an operator waits for its motion or text object
//   - CommandLine: an ex command or search pattern is being typed
//
// Transitions:
//
//	Normal ──i a o R──▶ Insert/Replace ──Esc──▶ Normal
//	Normal ──v V ^V──▶ Visual* ──Esc / operator──▶ Normal
//	Normal ──d c y …──▶ OperatorPending ──motion──▶ Normal or Insert
//	Normal/Visual ──: / ?──▶ CommandLine ──Enter / Esc──▶ (previous)
//
// Key interpretation lives in the dispatcher; this package only names the
// states, their cursor styles and status line indicators.
package mode
