package game

import (
	"fmt"
	"strings"
)

// Raw key identifiers emitted by the keyboard collaborator.
const (
	KeyEnter     = "ENTER"
	KeyBackspace = "<-"
)

// ActionKind is the closed set of things a key press can mean.
type ActionKind int

const (
	ActionAppend ActionKind = iota + 1
	ActionDelete
	ActionSubmit
)

func (k ActionKind) String() string {
	switch k {
	case ActionAppend:
		return "append"
	case ActionDelete:
		return "delete"
	case ActionSubmit:
		return "submit"
	}
	return "unknown"
}

// Action is a decoded key press. Letter is only meaningful for ActionAppend
// and is always lowercase.
type Action struct {
	Kind   ActionKind
	Letter byte
}

// Append, Delete and Submit build actions directly (tests, non-keyboard callers).
func Append(letter byte) Action { return Action{Kind: ActionAppend, Letter: lower(letter)} }
func Delete() Action           { return Action{Kind: ActionDelete} }
func Submit() Action           { return Action{Kind: ActionSubmit} }

// Decode maps a raw key identifier to an action. It is total: anything that is
// not ENTER or a backspace symbol becomes an Append of its first byte, and the
// engine refuses non-letters.
func Decode(raw string) Action {
	switch strings.ToUpper(raw) {
	case KeyEnter:
		return Submit()
	case KeyBackspace, "BACKSPACE", "\b", "\x7f":
		return Delete()
	}
	if raw == "" {
		return Action{Kind: ActionAppend}
	}
	return Append(raw[0])
}

// ParseKey is the strict form of Decode for untrusted input: only the 26
// letters (either case), ENTER and "<-" are accepted.
func ParseKey(raw string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case KeyEnter:
		return Submit(), nil
	case KeyBackspace:
		return Delete(), nil
	}
	k := strings.TrimSpace(raw)
	if len(k) != 1 || !isLetter(lower(k[0])) {
		return Action{}, fmt.Errorf("unknown key %q", raw)
	}
	return Append(k[0]), nil
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isLetter(b byte) bool { return b >= 'a' && b <= 'z' }
