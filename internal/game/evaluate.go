package game

// Evaluate scores guess against target with the two-pass pool algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count the remaining (non-correct) target letters.
//
// Pass 2:
//   - For each non-correct guess letter: if the pool still holds that letter,
//     mark Present and take one from the pool; otherwise mark Absent.
//
// Both words must be lowercase a–z of equal length; the engine guarantees this.
// On a length mismatch every position is Absent.
func Evaluate(guess, target string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	if len(target) != n {
		for i := range res {
			res[i] = MarkAbsent
		}
		return res
	}

	var pool [26]int

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = MarkCorrect
		} else if isLetter(target[i]) {
			pool[target[i]-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		c := guess[i]
		if isLetter(c) && pool[c-'a'] > 0 {
			res[i] = MarkPresent
			pool[c-'a']--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// allCorrect returns true if all marks are MarkCorrect.
func allCorrect(m []Mark) bool {
	for _, x := range m {
		if x != MarkCorrect {
			return false
		}
	}
	return len(m) > 0
}
