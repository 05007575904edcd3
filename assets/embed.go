// assets/embed.go
//
// Bundled word lists:
//   - start.txt:      root words a game can be started with.
//   - dictionary.txt: words the default dictionary recognizes (English).
//
// Both are newline-delimited, one lowercase word per line; blank lines and
// lines starting with '#' are ignored.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

const (
	StartFile      = "start.txt"
	DictionaryFile = "dictionary.txt"
)

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}

// ReadWords scans r line by line, trimming and lowercasing each entry.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// StartList returns the bundled root words.
func StartList() ([]string, error) {
	return readLines(StartFile)
}

// DictionaryList returns the bundled dictionary words.
func DictionaryList() ([]string, error) {
	return readLines(DictionaryFile)
}
