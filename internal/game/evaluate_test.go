package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	C = MarkCorrect
	P = MarkPresent
	A = MarkAbsent
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name   string
		guess  string
		target string
		want   []Mark
	}{
		{"exact", "crane", "crane", []Mark{C, C, C, C, C}},
		{"nothing shared", "ghost", "crane", []Mark{A, A, A, A, A}},
		{"anagram", "nacre", "crane", []Mark{P, P, P, P, C}},
		// one L claimed by the exact match, one left for the pool
		{"duplicates llama vs allow", "llama", "allow", []Mark{P, C, P, A, A}},
		{"guess repeats letter once in target", "geese", "those", []Mark{A, A, A, C, C}},
		{"second copy absent", "speed", "abide", []Mark{A, A, P, A, P}},
		{"spare e goes to first copy", "eerie", "theme", []Mark{P, A, A, A, C}},
		{"repeated guess letter single in target", "sassy", "essay", []Mark{P, P, C, A, C}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(tc.guess, tc.target))
		})
	}
}

func TestEvaluate_LengthMismatch(t *testing.T) {
	assert.Equal(t, []Mark{A, A, A}, Evaluate("abc", "crane"))
}

func TestEvaluate_NeverMorePresentThanPool(t *testing.T) {
	// For every letter, correct+present marks must not exceed its count in target.
	pairs := [][2]string{
		{"llama", "allow"}, {"eerie", "theme"}, {"sassy", "essay"},
		{"mamma", "llama"}, {"aaaaa", "abbey"}, {"belle", "level"},
	}
	for _, p := range pairs {
		marks := Evaluate(p[0], p[1])
		used := map[byte]int{}
		for i, m := range marks {
			if m != MarkAbsent {
				used[p[0][i]]++
			}
		}
		for c, n := range used {
			have := 0
			for i := 0; i < len(p[1]); i++ {
				if p[1][i] == c {
					have++
				}
			}
			assert.LessOrEqualf(t, n, have, "%s vs %s letter %c", p[0], p[1], c)
		}
	}
}
