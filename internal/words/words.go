// internal/words/words.go
//
// Provides the answer list that targets are drawn from.
//
// Responsibilities:
//   - Load answers from an environment-provided file or fall back to the
//     embedded default list.
//   - Keep only words that fit the board width.
//   - Supply RandomAnswer, At (for daily selection), IsAnswer and Count.
//
// Initialization behavior (Init):
//   1. If WORDS_ANSWERS_FILE is set (or a path is passed), read answers from it.
//   2. Otherwise use the embedded assets/answers.txt.
//
// Constraints:
//   • Words must be alphabetic (a–z) and exactly the board width long.
//   • Lists are normalized to lowercase.
//   • Guesses are never checked against this list.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/go-engine/assets"
)

var ErrEmpty = errors.New("words: answers list is empty")

// List is a loaded answer list for one word length.
type List struct {
	length  int
	answers []string
	set     map[string]struct{}
}

var (
	mu      sync.RWMutex
	current *List
)

// Load reads answers of the given length from path, or from the embedded
// list when path is empty.
func Load(path string, length int) (*List, error) {
	var raw []string
	var err error
	if path != "" {
		raw, err = readWordFile(path)
	} else {
		raw, err = assets.AnswersList()
	}
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}

	l := &List{length: length, set: make(map[string]struct{})}
	for _, w := range raw {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) != length || !isAlpha(w) {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.answers = append(l.answers, w)
	}
	if len(l.answers) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// Init loads the package-level list used by RandomAnswer and friends.
// An empty path falls back to WORDS_ANSWERS_FILE, then the embedded list.
func Init(path string, length int) error {
	if path == "" {
		path = os.Getenv("WORDS_ANSWERS_FILE")
	}
	l, err := Load(path, length)
	if err != nil {
		return err
	}
	mu.Lock()
	current = l
	mu.Unlock()
	return nil
}

// Default returns the list loaded by Init, or nil.
func Default() *List {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Random returns a cryptographically random answer.
func (l *List) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[n.Int64()]
}

// At returns the answer at index i modulo the list size.
func (l *List) At(i int) string {
	if i < 0 {
		i = -i
	}
	return l.answers[i%len(l.answers)]
}

// Contains reports whether w is an answer.
func (l *List) Contains(w string) bool {
	_, ok := l.set[strings.ToLower(w)]
	return ok
}

// Len is the number of answers.
func (l *List) Len() int { return len(l.answers) }

// WordLength is the length every answer has.
func (l *List) WordLength() int { return l.length }

// RandomAnswer returns a random answer from the list loaded by Init.
// If nothing is loaded, falls back to "crane".
func RandomAnswer() string {
	l := Default()
	if l == nil {
		return "crane"
	}
	return l.Random()
}

// IsAnswer reports whether w is in the list loaded by Init.
func IsAnswer(w string) bool {
	l := Default()
	return l != nil && l.Contains(w)
}

// Count returns the number of loaded answers.
func Count() int {
	l := Default()
	if l == nil {
		return 0
	}
	return l.Len()
}
