// Package assets embeds the default word list and the SQLite schema so the
// binary runs without any files on disk.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed answers.txt sql/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded answers, lowercased, comments skipped.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// Migrations returns the embedded migration files, rooted at sql/.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
