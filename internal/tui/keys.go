package tui

import "github.com/robalobadob/wordle/apps/go-engine/internal/game"

// Control keys the play loop handles itself.
const (
	KeyQuit = "QUIT"
)

// MapByte translates one byte read from a raw-mode terminal into a key
// identifier from the keyboard's closed set. ok is false for bytes that have
// no key (arrows, digits, punctuation).
func MapByte(b byte) (key string, ok bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return string(b - ('a' - 'A')), true
	case b >= 'A' && b <= 'Z':
		return string(b), true
	case b == '\r' || b == '\n':
		return game.KeyEnter, true
	case b == 0x7f || b == 0x08:
		return game.KeyBackspace, true
	case b == 0x03 || b == 0x1b || b == 0x04: // Ctrl-C, Esc, Ctrl-D
		return KeyQuit, true
	}
	return "", false
}

// MapBytes maps a buffer from one read. Escape sequences (arrow keys and
// the like) are dropped as a whole rather than read as Esc + letters.
func MapBytes(buf []byte) []string {
	if len(buf) > 1 && buf[0] == 0x1b {
		return nil
	}
	var out []string
	for _, b := range buf {
		if k, ok := MapByte(b); ok {
			out = append(out, k)
		}
	}
	return out
}
